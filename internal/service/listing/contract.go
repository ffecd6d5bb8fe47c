//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=listing_test
package listing

import (
	"context"

	"marketplace/internal/entities"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*entities.Listing, error)
}
