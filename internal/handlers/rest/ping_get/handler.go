package ping_get

import (
	"encoding/json"
	"net/http"

	"marketplace/internal/handlers/rest/dto"
	"marketplace/pkg/logger"
)

type Handler struct {
	log         handlerLogger
	subscribers SubscriberCounter
}

func New(log handlerLogger, subscribers SubscriberCounter) *Handler {
	return &Handler{
		log:         log.With(logger.NewField("handler", "ping_get")),
		subscribers: subscribers,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	res := dto.PingResponse{
		Message:             "pong",
		RealtimeSubscribers: h.subscribers.Len(),
	}

	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
