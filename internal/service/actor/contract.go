//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=actor_test
package actor

import (
	"context"

	"marketplace/internal/entities"
)

type Repository interface {
	GetRole(ctx context.Context, userID int64) (entities.Role, error)
	ListIDsByRole(ctx context.Context, role entities.Role) ([]int64, error)
}
