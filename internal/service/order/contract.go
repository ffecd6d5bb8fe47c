//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"marketplace/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error)
	GetByID(ctx context.Context, id int64) (*entities.Order, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Order, error)

	ListByBuyer(ctx context.Context, buyerID int64, filter entities.OrderFilter) ([]entities.Order, uint64, error)
	ListBySeller(ctx context.Context, sellerID int64, filter entities.OrderFilter) ([]entities.Order, uint64, error)
	ListByDeliveryPartner(ctx context.Context, partnerID int64, filter entities.OrderFilter) ([]entities.Order, uint64, error)

	UpdateStatus(ctx context.Context, orderID int64, next entities.OrderStatusType, actorID int64, isAdmin bool) (*entities.Order, error)
}

type JobReader interface {
	GetByOrderID(ctx context.Context, orderID int64) (*entities.DeliveryJob, error)
}

type ListingProvider interface {
	GetListing(ctx context.Context, id int64) (*entities.Listing, error)
}

type ActorResolver interface {
	Resolve(ctx context.Context, userID int64) (entities.Actor, error)
	DeliveryAudience(ctx context.Context, excludeID int64) ([]int64, error)
}

type ChargeCalculator interface {
	DistanceKm(lat1, lon1, lat2, lon2 *float64) float64
	Quote(unitPrice float64, quantity int, distanceKm, ratePer10Km float64) entities.Quote
}

type Dispatcher interface {
	Dispatch(effects entities.SideEffects)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type (
	// HookResult то, что шаг перехода изменил помимо статуса.
	HookResult struct {
		Order      *entities.Order
		Job        *entities.DeliveryJob
		JobCreated bool
	}
	TransitionHookFn func(ctx context.Context, order *entities.Order) (HookResult, error)
	HookFactory      interface {
		GetHandler(status entities.OrderStatusType) (TransitionHookFn, error)
	}
)
