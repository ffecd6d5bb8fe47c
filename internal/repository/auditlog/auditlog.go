package auditlog

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace/internal/entities"
	"marketplace/internal/repository"
)

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, action entities.AuditAction) (int64, error) {
	if action.Details == nil {
		action.Details = map[string]any{}
	}
	details, err := json.Marshal(action.Details)
	if err != nil {
		return 0, fmt.Errorf("marshal audit details: %w", err)
	}

	query := `INSERT INTO action_logs (action_type, entity_type, entity_id, actor_id, summary, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err = r.querier.QueryRow(
		ctx,
		query,
		action.ActionType,
		string(action.EntityType),
		action.EntityID,
		action.ActorID,
		action.Summary,
		details,
		action.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("unexpected audit log repository create error: %w", err)
	}

	return id, nil
}
