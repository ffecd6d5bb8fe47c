package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"marketplace/internal/entities"
	"marketplace/internal/repository"
	"marketplace/internal/service/listing"
)

type ListingDB struct {
	ID                  int64
	CreatedBy           int64
	Title               string
	Price               float64
	ListingType         string
	Latitude            *float64
	Longitude           *float64
	City                string
	AreaCode            string
	DeliveryRatePer10Km float64
	DeliveryMode        string
}

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Listing, error) {
	query := `SELECT id, created_by, title, price, listing_type, latitude, longitude,
			city, area_code, delivery_rate_per_10km, delivery_mode
		FROM listings
		WHERE id = $1`

	var l ListingDB
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&l.ID,
		&l.CreatedBy,
		&l.Title,
		&l.Price,
		&l.ListingType,
		&l.Latitude,
		&l.Longitude,
		&l.City,
		&l.AreaCode,
		&l.DeliveryRatePer10Km,
		&l.DeliveryMode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, listing.ErrListingNotFound
		}
		return nil, fmt.Errorf("unexpected listing repository getbyid error: %w", err)
	}

	return &entities.Listing{
		ID:                  l.ID,
		CreatedBy:           l.CreatedBy,
		Title:               l.Title,
		Price:               l.Price,
		ListingType:         entities.ActionKind(l.ListingType),
		Latitude:            l.Latitude,
		Longitude:           l.Longitude,
		City:                l.City,
		AreaCode:            l.AreaCode,
		DeliveryRatePer10Km: l.DeliveryRatePer10Km,
		DeliveryMode:        entities.DeliveryMode(l.DeliveryMode),
	}, nil
}
