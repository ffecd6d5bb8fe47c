package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"marketplace/internal/entities"
	"marketplace/internal/repository"
	"marketplace/internal/service/actor"
)

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetRole(ctx context.Context, userID int64) (entities.Role, error) {
	query := `SELECT role FROM users WHERE id = $1`

	var role string
	err := r.querier.QueryRow(ctx, query, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", actor.ErrUnknownActor
		}
		return "", fmt.Errorf("unexpected user repository get role error: %w", err)
	}

	return entities.Role(role), nil
}

func (r *Repository) ListIDsByRole(ctx context.Context, role entities.Role) ([]int64, error) {
	query := `SELECT id FROM users WHERE role = $1 ORDER BY id`

	rows, err := r.querier.Query(ctx, query, role.String())
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository list by role error: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository list by role error: %w", err)
	}
	return ids, nil
}
