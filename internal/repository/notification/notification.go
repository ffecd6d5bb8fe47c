package notification

import (
	"context"
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

func (r *Repository) Create(ctx context.Context, n entities.NotificationCreate) (*entities.Notification, error) {
	query := `INSERT INTO notifications (user_id, kind, title, body, entity_type, entity_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_read, created_at`

	notification := entities.Notification{
		UserID:     n.UserID,
		Kind:       n.Kind,
		Title:      n.Title,
		Body:       n.Body,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
	}
	err := r.querier.QueryRow(
		ctx,
		query,
		n.UserID,
		string(n.Kind),
		n.Title,
		n.Body,
		string(n.EntityType),
		n.EntityID,
	).Scan(
		&notification.ID,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected notification repository create error: %w", err)
	}

	return &notification, nil
}
