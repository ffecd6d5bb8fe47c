package order

import "marketplace/internal/entities"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var (
	sellerTargets = map[entities.OrderStatusType]struct{}{
		entities.OrderReceived:  {},
		entities.OrderPacking:   {},
		entities.OrderShipping:  {},
		entities.OrderCancelled: {},
	}
	deliveryTargets = map[entities.OrderStatusType]struct{}{
		entities.OrderShipping:       {},
		entities.OrderOutForDelivery: {},
		entities.OrderDelivered:      {},
	}
)

func validatePlacement(p entities.OrderPlacement) error {
	if p.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if p.Action != entities.ActionBuy && p.Action != entities.ActionRent {
		return ErrInvalidAction
	}
	if p.PaymentMode != entities.PaymentCOD {
		return ErrUnsupportedPaymentMode
	}
	return nil
}

func normalizeFilter(filter entities.OrderFilter) (entities.OrderFilter, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return filter, ErrInvalidStatus
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	return filter, nil
}

func canView(actor entities.Actor, order *entities.Order) bool {
	return actor.IsAdmin() ||
		order.BuyerID == actor.ID ||
		order.SellerID == actor.ID ||
		order.HasDeliveryPartner(actor.ID)
}

// authorizeTransition таблица ролей. Пользователь, который одновременно продавец
// и назначенный курьер, получает объединение разрешенных статусов.
func authorizeTransition(actor entities.Actor, order *entities.Order, job *entities.DeliveryJob, next entities.OrderStatusType) error {
	if actor.IsAdmin() {
		return nil
	}

	isSeller := order.SellerID == actor.ID
	// исполнитель остается назначенным и после того, как сам закрыл задачу
	isAssignee := actor.IsDelivery() &&
		(order.HasDeliveryPartner(actor.ID) || job != nil && job.Status != entities.JobOpen && job.IsClaimedBy(actor.ID))

	if !isSeller && !isAssignee {
		return denied(ReasonNotParticipant)
	}

	if isSeller {
		if _, ok := sellerTargets[next]; ok {
			if next == entities.OrderCancelled && order.Status == entities.OrderOutForDelivery {
				return denied(ReasonNoLateCancel)
			}
			return nil
		}
	}

	if isAssignee {
		if _, ok := deliveryTargets[next]; ok {
			return nil
		}
	}

	if isAssignee && !isSeller {
		return denied(ReasonDeliveryTarget)
	}
	return denied(ReasonSellerTargets)
}
