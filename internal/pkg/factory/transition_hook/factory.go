package transition_hook

import (
	"context"
	"fmt"

	"marketplace/internal/entities"
	"marketplace/internal/service/order"
)

// StatusHookFactory дополнительные шаги перехода, выполняются в транзакции смены статуса.
type StatusHookFactory struct {
	jobs     JobStore
	listings ListingProvider
	payments PaymentMarker
}

func NewStatusHookFactory(jobs JobStore, listings ListingProvider, payments PaymentMarker) *StatusHookFactory {
	return &StatusHookFactory{
		jobs:     jobs,
		listings: listings,
		payments: payments,
	}
}

func (f *StatusHookFactory) GetHandler(status entities.OrderStatusType) (order.TransitionHookFn, error) {
	switch status {
	case entities.OrderShipping:
		return f.shippingHandler, nil
	case entities.OrderDelivered:
		return f.deliveredHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", order.ErrUndefinedStatus, status)
	}
}

// shippingHandler идемпотентно: повторный shipping вернет ту же задачу с JobCreated=false.
func (f *StatusHookFactory) shippingHandler(ctx context.Context, o *entities.Order) (order.HookResult, error) {
	if !o.DeliveryMode.RequiresHandoff() {
		return order.HookResult{}, nil
	}

	listing, err := f.listings.GetListing(ctx, o.ListingID)
	if err != nil {
		return order.HookResult{}, fmt.Errorf("get listing for pickup of order %d: %w", o.ID, err)
	}

	orderID := o.ID
	job, created, err := f.jobs.EnsureForOrder(ctx, entities.DeliveryJobCreate{
		ListingID:       o.ListingID,
		OrderID:         &orderID,
		CreatedBy:       o.SellerID,
		PickupCity:      listing.City,
		PickupAreaCode:  listing.AreaCode,
		PickupLatitude:  listing.Latitude,
		PickupLongitude: listing.Longitude,
		DeliveryMode:    o.DeliveryMode,
	})
	if err != nil {
		return order.HookResult{}, fmt.Errorf("ensure delivery job for order %d: %w", o.ID, err)
	}

	return order.HookResult{Job: job, JobCreated: created}, nil
}

// deliveredHandler при оплате наличными доставка означает, что деньги получены.
func (f *StatusHookFactory) deliveredHandler(ctx context.Context, o *entities.Order) (order.HookResult, error) {
	if o.PaymentState == entities.PaymentPaid {
		return order.HookResult{}, nil
	}

	paid, err := f.payments.MarkPaid(ctx, o.ID)
	if err != nil {
		return order.HookResult{}, fmt.Errorf("mark order %d paid: %w", o.ID, err)
	}
	return order.HookResult{Order: paid}, nil
}
