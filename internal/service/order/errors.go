package order

import (
	"errors"
	"fmt"

	"marketplace/pkg/tx"
)

var (
	ErrInvalidOrderID         = errors.New("invalid order id")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrInvalidQuantity        = errors.New("quantity must be at least 1")
	ErrInvalidAction          = errors.New("action must be buy or rent")
	ErrActionMismatch         = errors.New("action does not match listing type")
	ErrUnsupportedPaymentMode = errors.New("unsupported payment mode")
	ErrInvalidScope           = errors.New("invalid order scope")
	ErrSelfOrder              = errors.New("you cannot order your own listing")

	ErrOrderNotFound    = errors.New("order not found")
	ErrForbidden        = errors.New("forbidden")
	ErrOrderFinalized   = errors.New("order is already finalized")
	ErrConcurrentUpdate = fmt.Errorf("order was modified concurrently: %w", tx.ErrSerialization)
	ErrUndefinedStatus  = errors.New("undefined order status")
)

const (
	ReasonNotParticipant = "Only the seller, the assigned delivery partner, or an admin can update this order"
	ReasonSellerTargets  = "Seller can set received, packing, shipping, or cancelled"
	ReasonDeliveryTarget = "Delivery partner can set shipping, out_for_delivery, or delivered"
	ReasonNoLateCancel   = "Order cannot be cancelled once it is out for delivery"
	ReasonNotVisible     = "Only the buyer, the seller, the delivery partner, or an admin can view this order"
)

// TransitionDeniedError отказ с конкретной причиной, которую можно показать пользователю.
type TransitionDeniedError struct {
	Reason string
}

func (e *TransitionDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Reason)
}

func (e *TransitionDeniedError) Unwrap() error {
	return ErrForbidden
}

func denied(reason string) error {
	return &TransitionDeniedError{Reason: reason}
}
