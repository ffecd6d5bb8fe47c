package events_stream_get

import (
	"net/http"
	"time"

	"marketplace/internal/handlers/rest/dto"
	"marketplace/internal/pkg/middlewares/actor"
	"marketplace/internal/pkg/realtime"
	"marketplace/pkg/logger"
)

type Handler struct {
	log      handlerLogger
	registry Registry
}

func New(log handlerLogger, registry Registry) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:      handlerLog,
		registry: registry,
	}
}

// ServeHTTP держит соединение, пока клиент не отключится или подписку не удалит реестр.
// Клиент после переподключения сам перечитывает состояние, пропущенные кадры не досылаются.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor.UserID(r.Context())
	if !ok {
		_ = dto.WriteError(w, http.StatusUnauthorized, dto.CodeUnauthorized, "Authentication required")
		return
	}

	rc := http.NewResponseController(w)
	// WriteTimeout сервера для потока не действует
	_ = rc.SetWriteDeadline(time.Time{})

	sub := h.registry.Register(userID)
	defer h.registry.Unregister(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := h.send(rc, w, realtime.Frame{Comment: "connected"}); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("user_id", userID),
		).Warn("event stream not flushable")
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, ok := <-sub.Frames():
			if !ok {
				h.log.With(
					logger.NewField("user_id", userID),
				).Debug("event stream pruned")
				return
			}
			if err := h.send(rc, w, frame); err != nil {
				return
			}
		}
	}
}

func (h *Handler) send(rc *http.ResponseController, w http.ResponseWriter, frame realtime.Frame) error {
	if _, err := frame.WriteTo(w); err != nil {
		return err
	}
	return rc.Flush()
}
