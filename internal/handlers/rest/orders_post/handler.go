package orders_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace/internal/handlers/rest/dto"
	"marketplace/internal/pkg/middlewares/actor"
	actorService "marketplace/internal/service/actor"
	"marketplace/internal/service/listing"
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

	var orderCreateDTO dto.OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Error{Error: "Invalid JSON body", Code: dto.CodeValidation})
		return
	}

	orderEntity, err := h.service.PlaceOrder(r.Context(), actorID, orderCreateDTO.ToEntity())
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidQuantity),
			errors.Is(err, order.ErrInvalidAction),
			errors.Is(err, order.ErrActionMismatch),
			errors.Is(err, order.ErrUnsupportedPaymentMode),
			errors.Is(err, order.ErrSelfOrder),
			errors.Is(err, listing.ErrInvalidListingID):
			h.write(w, http.StatusBadRequest, dto.Error{Error: err.Error(), Code: dto.CodeValidation})
		case errors.Is(err, listing.ErrListingNotFound):
			h.write(w, http.StatusNotFound, dto.Error{Error: "Listing not found", Code: dto.CodeNotFound})
		case errors.Is(err, actorService.ErrUnknownActor):
			h.write(w, http.StatusUnauthorized, dto.Error{Error: "Unknown user", Code: dto.CodeUnauthorized})
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("actor_id", actorID),
			).Error("place order")
			h.write(w, http.StatusInternalServerError, dto.Error{Error: "Failed to place order", Code: dto.CodeInternal})
		}
		return
	}

	h.write(w, http.StatusCreated, dto.OrderResponse{OK: true, Order: dto.OrderFromEntity(orderEntity)})
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	err := dto.WriteJSON(w, status, body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
