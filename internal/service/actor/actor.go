package actor

import (
	"context"
	"fmt"

	"marketplace/internal/entities"
)

// Service роль пользователя читается из БД на каждый запрос и нигде не кэшируется,
// чтобы смена роли (например, лишение прав курьера) действовала сразу.
type Service struct {
	repository Repository
}

func New(repository Repository) *Service {
	return &Service{
		repository: repository,
	}
}

func (s *Service) Resolve(ctx context.Context, userID int64) (entities.Actor, error) {
	if userID <= 0 {
		return entities.Actor{}, ErrInvalidUserID
	}

	role, err := s.repository.GetRole(ctx, userID)
	if err != nil {
		return entities.Actor{}, fmt.Errorf("resolve role of user %d: %w", userID, err)
	}

	switch role {
	case entities.RoleUser, entities.RoleDelivery, entities.RoleAdmin:
	default:
		return entities.Actor{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	return entities.Actor{ID: userID, Role: role}, nil
}

// DeliveryAudience все курьеры кроме excludeID.
func (s *Service) DeliveryAudience(ctx context.Context, excludeID int64) ([]int64, error) {
	ids, err := s.repository.ListIDsByRole(ctx, entities.RoleDelivery)
	if err != nil {
		return nil, fmt.Errorf("list delivery users: %w", err)
	}

	audience := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != excludeID {
			audience = append(audience, id)
		}
	}
	return audience, nil
}
