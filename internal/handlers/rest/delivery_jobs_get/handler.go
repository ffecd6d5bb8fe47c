package delivery_jobs_get

import (
	"errors"
	"net/http"

	"marketplace/internal/entities"
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
	filter, err := parseFilter(r)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		return
	}

	jobs, page, err := h.service.ListJobs(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidJobStatus),
			errors.Is(err, delivery.ErrInvalidLocation),
			errors.Is(err, delivery.ErrInvalidRadius):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("list delivery jobs")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to list delivery jobs", Code: dto.CodeInternal})
		}
		return
	}

	h.write(w, http.StatusOK, dto.DeliveryJobList{
		Data: dto.DeliveryJobsFromEntities(jobs),
		Meta: dto.Meta{Total: page.Total, Limit: page.Limit, Offset: page.Offset},
	})
}

var errInvalidQuery = errors.New("invalid query parameters")

func parseFilter(r *http.Request) (entities.DeliveryJobFilter, error) {
	var (
		filter entities.DeliveryJobFilter
		err    error
	)

	filter.Limit, filter.Offset, err = dto.Page(r)
	if err != nil {
		return filter, errInvalidQuery
	}
	if filter.Lat, err = dto.OptionalFloat(r, "lat"); err != nil {
		return filter, errInvalidQuery
	}
	if filter.Lon, err = dto.OptionalFloat(r, "lon"); err != nil {
		return filter, errInvalidQuery
	}

	radius, err := dto.OptionalFloat(r, "radiusKm")
	if err != nil {
		return filter, errInvalidQuery
	}
	if radius != nil {
		filter.RadiusKm = *radius
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := entities.DeliveryJobStatus(raw)
		filter.Status = &status
	}
	return filter, nil
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	err := dto.WriteJSON(w, status, body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
