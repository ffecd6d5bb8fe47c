package delivery_job_claim_post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"marketplace/internal/handlers/rest/dto"
	"marketplace/internal/pkg/middlewares/actor"
	actorService "marketplace/internal/service/actor"
	"marketplace/internal/service/delivery"
	"marketplace/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP "не найдена" и "уже занята" обе отдают 404, различаются по code в теле.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor.UserID(r.Context())
	if !ok {
		h.write(w, http.StatusUnauthorized, dto.Error{Error: "Authentication required", Code: dto.CodeUnauthorized})
		return
	}

	jobID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: "Invalid job id", Code: dto.CodeValidation})
		return
	}

	result, err := h.service.ClaimJob(r.Context(), actorID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidJobID):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		case errors.Is(err, delivery.ErrJobAlreadyClaimed):
			h.write(w, http.StatusNotFound, dto.Error{Error: "Delivery job already claimed", Code: dto.CodeConflict})
		case errors.Is(err, delivery.ErrClaimConflict):
			h.write(w, http.StatusConflict, dto.Error{Error: "Delivery job is being updated, retry", Code: dto.CodeConflict})
		case errors.Is(err, delivery.ErrJobNotFound):
			h.write(w, http.StatusNotFound, dto.Error{Error: "Delivery job not found", Code: dto.CodeNotFound})
		case errors.Is(err, delivery.ErrDeliveryRole):
			h.write(w, http.StatusForbidden, dto.Error{Error: "Forbidden", Code: dto.CodeForbidden, Reason: "Only delivery partners can claim jobs"})
		case errors.Is(err, actorService.ErrUnknownActor):
			h.write(w, http.StatusUnauthorized, dto.Error{Error: "Unknown user", Code: dto.CodeUnauthorized})
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("job_id", jobID),
			).Error("claim delivery job")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to claim delivery job", Code: dto.CodeInternal})
		}
		return
	}

	response := dto.ClaimResponse{
		OK:  true,
		Job: dto.DeliveryJobFromEntity(result.Job),
	}
	if result.Order != nil {
		orderDTO := dto.OrderFromEntity(result.Order)
		response.Order = &orderDTO
	}

	h.write(w, http.StatusOK, response)
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	err := dto.WriteJSON(w, status, body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
