package listing

import (
	"context"
	"fmt"

	"marketplace/internal/entities"
)

// Service только чтение: объявлениями владеет внешний модуль.
type Service struct {
	repository Repository
}

func New(repository Repository) *Service {
	return &Service{
		repository: repository,
	}
}

func (s *Service) GetListing(ctx context.Context, id int64) (*entities.Listing, error) {
	if id <= 0 {
		return nil, ErrInvalidListingID
	}

	listing, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing %d: %w", id, err)
	}

	if listing.DeliveryRatePer10Km < 0 {
		listing.DeliveryRatePer10Km = 0
	}
	return listing, nil
}
