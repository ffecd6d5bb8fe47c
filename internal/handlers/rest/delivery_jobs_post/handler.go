package delivery_jobs_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace/internal/handlers/rest/dto"
	"marketplace/internal/pkg/middlewares/actor"
	actorService "marketplace/internal/service/actor"
	"marketplace/internal/service/delivery"
	"marketplace/internal/service/listing"
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
	actorID, ok := actor.UserID(r.Context())
	if !ok {
		h.write(w, http.StatusUnauthorized, dto.Error{Error: "Authentication required", Code: dto.CodeUnauthorized})
		return
	}

	var jobCreateDTO dto.DeliveryJobCreate
	err := json.NewDecoder(r.Body).Decode(&jobCreateDTO)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: "Invalid JSON body", Code: dto.CodeValidation})
		return
	}

	job, err := h.service.CreateJob(r.Context(), actorID, jobCreateDTO.ToEntity())
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrInvalidListingID),
			errors.Is(err, delivery.ErrInvalidLocation):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		case errors.Is(err, listing.ErrListingNotFound):
			h.write(w, http.StatusNotFound, dto.Error{Error: "Listing not found", Code: dto.CodeNotFound})
		case errors.Is(err, delivery.ErrForbidden):
			h.write(w, http.StatusForbidden, dto.Error{Error: "Forbidden", Code: dto.CodeForbidden, Reason: "Only the listing owner can request delivery"})
		case errors.Is(err, actorService.ErrUnknownActor):
			h.write(w, http.StatusUnauthorized, dto.Error{Error: "Unknown user", Code: dto.CodeUnauthorized})
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("listing_id", jobCreateDTO.ListingID),
			).Error("create delivery job")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to create delivery job", Code: dto.CodeInternal})
		}
		return
	}

	h.write(w, http.StatusCreated, dto.DeliveryJobResponse{OK: true, Job: dto.DeliveryJobFromEntity(job)})
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	err := dto.WriteJSON(w, status, body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
