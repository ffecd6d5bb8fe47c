package orders_list_get

import (
	"errors"
	"net/http"

	"marketplace/internal/entities"
	"marketplace/internal/handlers/rest/dto"
	"marketplace/internal/pkg/middlewares/actor"
	actorService "marketplace/internal/service/actor"
	"marketplace/internal/service/order"
	"marketplace/pkg/logger"
)

// Handler обслуживает /orders/mine, /orders/seller и /orders/delivery,
// отличаются они только scope.
type Handler struct {
	log     handlerLogger
	service Service
	scope   entities.OrderScope
}

func New(log handlerLogger, service Service, scope entities.OrderScope) *Handler {
	handlerLog := log.With(logger.NewField("scope", string(scope)))

	return &Handler{
		log:     handlerLog,
		service: service,
		scope:   scope,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor.UserID(r.Context())
	if !ok {
		h.write(w, http.StatusUnauthorized, dto.Error{Error: "Authentication required", Code: dto.CodeUnauthorized})
		return
	}

	limit, offset, err := dto.Page(r)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: "limit and offset must be non-negative integers", Code: dto.CodeValidation})
		return
	}

	filter := entities.OrderFilter{Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := entities.OrderStatusType(raw)
		filter.Status = &status
	}

	orders, page, err := h.service.ListOrders(r.Context(), actorID, h.scope, filter)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus),
			errors.Is(err, order.ErrInvalidScope):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		case errors.Is(err, actorService.ErrUnknownActor):
			h.write(w, http.StatusUnauthorized, dto.Error{Error: "Unknown user", Code: dto.CodeUnauthorized})
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("actor_id", actorID),
			).Error("list orders")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to list orders", Code: dto.CodeInternal})
		}
		return
	}

	h.write(w, http.StatusOK, dto.OrderList{
		Data: dto.OrdersFromEntities(orders),
		Meta: dto.Meta{Total: page.Total, Limit: page.Limit, Offset: page.Offset},
	})
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	err := dto.WriteJSON(w, status, body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
