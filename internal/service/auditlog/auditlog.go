package auditlog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/entities"
)

const maxSummaryLen = 500

type Service struct {
	repository Repository
}

func New(repository Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// Record сохраняет действие из топика аудита в action_logs.
func (s *Service) Record(ctx context.Context, action entities.AuditAction) (int64, error) {
	action.ActionType = strings.TrimSpace(action.ActionType)
	if action.ActionType == "" {
		return 0, ErrMissingActionType
	}
	if action.EntityType != entities.EntityOrder && action.EntityType != entities.EntityDeliveryJob {
		return 0, fmt.Errorf("%w: type %q", ErrInvalidEntity, action.EntityType)
	}
	if action.EntityID <= 0 {
		return 0, fmt.Errorf("%w: id %d", ErrInvalidEntity, action.EntityID)
	}

	if runes := []rune(action.Summary); len(runes) > maxSummaryLen {
		action.Summary = string(runes[:maxSummaryLen])
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now().UTC()
	}

	id, err := s.repository.Create(ctx, action)
	if err != nil {
		return 0, fmt.Errorf("save audit action: %w", err)
	}
	return id, nil
}
