//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=transition_hook_test
package transition_hook

import (
	"context"

	"marketplace/internal/entities"
)

type JobStore interface {
	EnsureForOrder(ctx context.Context, jobCreate entities.DeliveryJobCreate) (*entities.DeliveryJob, bool, error)
}

type ListingProvider interface {
	GetListing(ctx context.Context, id int64) (*entities.Listing, error)
}

type PaymentMarker interface {
	MarkPaid(ctx context.Context, orderID int64) (*entities.Order, error)
}
