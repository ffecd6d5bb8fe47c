package audit_log

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"marketplace/internal/entities"
	"marketplace/internal/service/auditlog"
	"marketplace/pkg/logger"
)

type Handler struct {
	auditService             Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, auditService Service, timeout time.Duration) *Handler {
	return &Handler{
		auditService:             auditService,
		log:                      log.With(logger.NewField("handler", "audit_log")),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("audit.log: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			if shouldExit := h.messageProcessing(sess, message); shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("audit.log: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing true, если нужно прервать ConsumeClaim (отмена контекста,
// сообщение не помечается и будет прочитано повторно).
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event actionEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("audit.log handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("action", event.ActionType),
		logger.NewField("entity_type", event.EntityType),
		logger.NewField("entity_id", event.EntityID),
		logger.NewField("offset", message.Offset),
	)

	id, err := h.auditService.Record(ctx, event.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("audit.log handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, auditlog.ErrMissingActionType) || errors.Is(err, auditlog.ErrInvalidEntity):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("audit.log handler skipped invalid action")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("audit.log handler failed to record action")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(logger.NewField("id", id)).Info("audit.log: recorded")
	sess.MarkMessage(message, "")
	return false
}

type actionEvent struct {
	ActionType string         `json:"actionType"`
	EntityType string         `json:"entityType"`
	EntityID   int64          `json:"entityId"`
	ActorID    int64          `json:"actorId"`
	Summary    string         `json:"summary"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (e actionEvent) toDomain() entities.AuditAction {
	return entities.AuditAction{
		ActionType: e.ActionType,
		EntityType: entities.EntityType(e.EntityType),
		EntityID:   e.EntityID,
		ActorID:    e.ActorID,
		Summary:    e.Summary,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}
