//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

	"marketplace/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, jobCreate entities.DeliveryJobCreate) (*entities.DeliveryJob, error)
	GetByID(ctx context.Context, id int64) (*entities.DeliveryJob, error)
	List(ctx context.Context, filter entities.DeliveryJobFilter) ([]entities.DeliveryJob, error)
	Count(ctx context.Context, filter entities.DeliveryJobFilter) (uint64, error)

	Claim(ctx context.Context, jobID, userID int64) (*entities.DeliveryJob, error)
	UpdateStatus(ctx context.Context, jobID int64, next entities.DeliveryJobStatus, actorID int64, isAdmin bool) (*entities.DeliveryJob, error)
	Delete(ctx context.Context, jobID, actorID int64, isAdmin bool) (*entities.DeliveryJob, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Order, error)
	SetDeliveryPartner(ctx context.Context, orderID int64, partnerID *int64) (*entities.Order, error)
}

type ListingProvider interface {
	GetListing(ctx context.Context, id int64) (*entities.Listing, error)
}

type ActorResolver interface {
	Resolve(ctx context.Context, userID int64) (entities.Actor, error)
	DeliveryAudience(ctx context.Context, excludeID int64) ([]int64, error)
}

type DistanceCalculator interface {
	DistanceKm(lat1, lon1, lat2, lon2 *float64) float64
}

type Dispatcher interface {
	Dispatch(effects entities.SideEffects)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
