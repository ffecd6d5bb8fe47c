package order_status_put

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
	"marketplace/internal/service/order"
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

	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: "Invalid order id", Code: dto.CodeValidation})
		return
	}

	var statusDTO dto.StatusUpdate
	err = json.NewDecoder(r.Body).Decode(&statusDTO)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: "Invalid JSON body", Code: dto.CodeValidation})
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), actorID, orderID, entities.OrderStatusType(statusDTO.Status))
	if err != nil {
		var deniedErr *order.TransitionDeniedError
		switch {
		case errors.Is(err, order.ErrInvalidOrderID),
			errors.Is(err, order.ErrInvalidStatus):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		case errors.Is(err, order.ErrOrderNotFound):
			h.write(w, http.StatusNotFound, dto.Error{Error: "Order not found", Code: dto.CodeNotFound})
		case errors.As(err, &deniedErr):
			h.write(w, http.StatusForbidden, dto.Error{Error: "Forbidden", Code: dto.CodeForbidden, Reason: deniedErr.Reason})
		case errors.Is(err, order.ErrOrderFinalized),
			errors.Is(err, order.ErrConcurrentUpdate):
			h.write(w, http.StatusConflict, dto.Error{Error: err.Error(), Code: dto.CodeConflict})
		case errors.Is(err, actorService.ErrUnknownActor):
			h.write(w, http.StatusUnauthorized, dto.Error{Error: "Unknown user", Code: dto.CodeUnauthorized})
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("order_id", orderID),
				logger.NewField("status", statusDTO.Status),
			).Error("update order status")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to update order status", Code: dto.CodeInternal})
		}
		return
	}

	response := dto.TransitionResponse{
		OK:    true,
		Order: dto.OrderFromEntity(result.Order),
	}
	if result.DeliveryJob != nil {
		job := dto.DeliveryJobFromEntity(result.DeliveryJob)
		response.DeliveryJob = &job
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
