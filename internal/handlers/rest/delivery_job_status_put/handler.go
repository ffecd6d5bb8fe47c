package delivery_job_status_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"marketplace/internal/entities"
	"marketplace/internal/handlers/rest/dto"
	"marketplace/internal/pkg/middlewares/actor"
	actorService "marketplace/internal/service/actor"
	"marketplace/internal/service/delivery"
	"marketplace/pkg/logger"
)

const reasonNotManager = "Only the creator, the delivery partner, or an admin can update this job"

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

	var statusDTO dto.StatusUpdate
	err = json.NewDecoder(r.Body).Decode(&statusDTO)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: "Invalid JSON body", Code: dto.CodeValidation})
		return
	}

	job, err := h.service.UpdateJobStatus(r.Context(), actorID, jobID, entities.DeliveryJobStatus(statusDTO.Status))
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidJobID),
			errors.Is(err, delivery.ErrInvalidJobStatus),
			errors.Is(err, delivery.ErrClaimRequired):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		case errors.Is(err, delivery.ErrJobNotFound):
			h.write(w, http.StatusNotFound, dto.Error{Error: "Delivery job not found", Code: dto.CodeNotFound})
		case errors.Is(err, delivery.ErrForbidden):
			h.write(w, http.StatusForbidden, dto.Error{Error: "Forbidden", Code: dto.CodeForbidden, Reason: reasonNotManager})
		case errors.Is(err, delivery.ErrJobFinalized),
			errors.Is(err, delivery.ErrJobNotClaimed):
			h.write(w, http.StatusConflict, dto.Error{Error: err.Error(), Code: dto.CodeConflict})
		case errors.Is(err, actorService.ErrUnknownActor):
			h.write(w, http.StatusUnauthorized, dto.Error{Error: "Unknown user", Code: dto.CodeUnauthorized})
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("job_id", jobID),
				logger.NewField("status", statusDTO.Status),
			).Error("update delivery job status")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to update delivery job", Code: dto.CodeInternal})
		}
		return
	}

	h.write(w, http.StatusOK, dto.DeliveryJobResponse{OK: true, Job: dto.DeliveryJobFromEntity(job)})
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	err := dto.WriteJSON(w, status, body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
