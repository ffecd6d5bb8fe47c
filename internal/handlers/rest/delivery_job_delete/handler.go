package delivery_job_delete

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

const reasonNotManager = "Only the creator, the delivery partner, or an admin can delete this job"

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

	job, err := h.service.DeleteJob(r.Context(), actorID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidJobID):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		case errors.Is(err, delivery.ErrJobNotFound):
			h.write(w, http.StatusNotFound, dto.Error{Error: "Delivery job not found", Code: dto.CodeNotFound})
		case errors.Is(err, delivery.ErrForbidden):
			h.write(w, http.StatusForbidden, dto.Error{Error: "Forbidden", Code: dto.CodeForbidden, Reason: reasonNotManager})
		case errors.Is(err, actorService.ErrUnknownActor):
			h.write(w, http.StatusUnauthorized, dto.Error{Error: "Unknown user", Code: dto.CodeUnauthorized})
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("job_id", jobID),
			).Error("delete delivery job")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to delete delivery job", Code: dto.CodeInternal})
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
