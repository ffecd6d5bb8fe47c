package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"marketplace/internal/entities"
)

type message struct {
	ActionType string         `json:"actionType"`
	EntityType string         `json:"entityType"`
	EntityID   int64          `json:"entityId"`
	ActorID    int64          `json:"actorId"`
	Summary    string         `json:"summary"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Gateway публикует действия в топик аудита, запись в action_logs делает воркер.
type Gateway struct {
	producer producer
	topic    string
}

func New(producer producer, topic string) *Gateway {
	return &Gateway{
		producer: producer,
		topic:    topic,
	}
}

func (g *Gateway) LogAction(ctx context.Context, action entities.AuditAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(message{
		ActionType: action.ActionType,
		EntityType: string(action.EntityType),
		EntityID:   action.EntityID,
		ActorID:    action.ActorID,
		Summary:    action.Summary,
		Details:    action.Details,
		CreatedAt:  action.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal audit action: %w", err)
	}

	start := time.Now()
	// ключ по сущности: все действия одного заказа попадают в одну партицию по порядку
	_, _, err = g.producer.SendMessage(&sarama.ProducerMessage{
		Topic: g.topic,
		Key:   sarama.StringEncoder(string(action.EntityType) + ":" + strconv.FormatInt(action.EntityID, 10)),
		Value: sarama.ByteEncoder(value),
	})
	AuditPublishDuration.WithLabelValues(resultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("publish audit action %s: %w", action.ActionType, err)
	}
	return nil
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
