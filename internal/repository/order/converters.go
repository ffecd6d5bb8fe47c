package order

import "marketplace/internal/entities"

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}
	return &entities.Order{
		ID:                  o.ID,
		ListingID:           o.ListingID,
		BuyerID:             o.BuyerID,
		SellerID:            o.SellerID,
		DeliveryPartnerID:   o.DeliveryPartnerID,
		Action:              entities.ActionKind(o.Action),
		Quantity:            o.Quantity,
		UnitPrice:           o.UnitPrice,
		TotalPrice:          o.TotalPrice,
		DistanceKm:          o.DistanceKm,
		DeliveryRatePer10Km: o.DeliveryRatePer10Km,
		DeliveryCharge:      o.DeliveryCharge,
		PayableTotal:        o.PayableTotal,
		PaymentMode:         entities.PaymentMode(o.PaymentMode),
		PaymentState:        entities.PaymentState(o.PaymentState),
		Status:              entities.OrderStatusType(o.Status),
		DeliveryMode:        entities.DeliveryMode(o.DeliveryMode),
		BuyerCity:           o.BuyerCity,
		BuyerAreaCode:       o.BuyerAreaCode,
		Notes:               o.Notes,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i := range ordersDB {
		result[i] = *ToDomain(&ordersDB[i])
	}
	return result
}
