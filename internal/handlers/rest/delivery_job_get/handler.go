package delivery_job_get

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"marketplace/internal/handlers/rest/dto"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: "Invalid job id", Code: dto.CodeValidation})
		return
	}

	job, err := h.service.GetJob(r.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidJobID):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		case errors.Is(err, delivery.ErrJobNotFound):
			h.write(w, http.StatusNotFound, dto.Error{Error: "Delivery job not found", Code: dto.CodeNotFound})
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("job_id", jobID),
			).Error("get delivery job")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to load delivery job", Code: dto.CodeInternal})
		}
		return
	}

	h.write(w, http.StatusOK, dto.DeliveryJobFromEntity(job))
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	err := dto.WriteJSON(w, status, body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
