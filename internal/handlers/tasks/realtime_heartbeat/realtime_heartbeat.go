package realtime_heartbeat

import (
	"context"
	"time"

	"marketplace/pkg/logger"
)

type Registry interface {
	Heartbeat() (alive, pruned int)
}

// RealtimeHeartbeat держит SSE соединения живыми через прокси и убирает
// подписки, которые перестали читать.
type RealtimeHeartbeat struct {
	log      logger.Logger
	registry Registry
	interval time.Duration
}

func NewRealtimeHeartbeat(log logger.Logger, registry Registry, interval time.Duration) *RealtimeHeartbeat {
	return &RealtimeHeartbeat{
		log:      log,
		registry: registry,
		interval: interval,
	}
}

func (h *RealtimeHeartbeat) TTL() time.Duration {
	return h.interval
}

func (h *RealtimeHeartbeat) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	alive, pruned := h.registry.Heartbeat()
	if pruned > 0 {
		h.log.With(
			logger.NewField("alive", alive),
			logger.NewField("pruned", pruned),
		).Info("realtime heartbeat")
	}

	return nil
}

func (h *RealtimeHeartbeat) Info() string {
	return "realtime heartbeat"
}
