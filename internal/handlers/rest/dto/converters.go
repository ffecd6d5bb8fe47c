package dto

import "marketplace/internal/entities"

func OrderFromEntity(o *entities.Order) Order {
	return Order{
		ID:                  o.ID,
		ListingID:           o.ListingID,
		BuyerID:             o.BuyerID,
		SellerID:            o.SellerID,
		DeliveryPartnerID:   o.DeliveryPartnerID,
		Action:              o.Action.String(),
		Quantity:            o.Quantity,
		UnitPrice:           o.UnitPrice,
		TotalPrice:          o.TotalPrice,
		DistanceKm:          o.DistanceKm,
		DeliveryRatePer10Km: o.DeliveryRatePer10Km,
		DeliveryCharge:      o.DeliveryCharge,
		PayableTotal:        o.PayableTotal,
		PaymentMode:         o.PaymentMode.String(),
		PaymentState:        o.PaymentState.String(),
		Status:              o.Status.String(),
		DeliveryMode:        o.DeliveryMode.String(),
		BuyerCity:           o.BuyerCity,
		BuyerAreaCode:       o.BuyerAreaCode,
		Notes:               o.Notes,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func OrdersFromEntities(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for i := range orders {
		result = append(result, OrderFromEntity(&orders[i]))
	}
	return result
}

func DeliveryJobFromEntity(j *entities.DeliveryJob) DeliveryJob {
	return DeliveryJob{
		ID:              j.ID,
		ListingID:       j.ListingID,
		OrderID:         j.OrderID,
		CreatedBy:       j.CreatedBy,
		ClaimedBy:       j.ClaimedBy,
		PickupCity:      j.PickupCity,
		PickupAreaCode:  j.PickupAreaCode,
		PickupLatitude:  j.PickupLatitude,
		PickupLongitude: j.PickupLongitude,
		Status:          j.Status.String(),
		DeliveryMode:    j.DeliveryMode.String(),
		DistanceKm:      j.DistanceKm,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func DeliveryJobsFromEntities(jobs []entities.DeliveryJob) []DeliveryJob {
	result := make([]DeliveryJob, 0, len(jobs))
	for i := range jobs {
		result = append(result, DeliveryJobFromEntity(&jobs[i]))
	}
	return result
}

func (r *DeliveryJobCreate) ToEntity() entities.DeliveryJobCreate {
	return entities.DeliveryJobCreate{
		ListingID:       r.ListingID,
		OrderID:         r.OrderID,
		PickupCity:      r.PickupCity,
		PickupAreaCode:  r.PickupAreaCode,
		PickupLatitude:  r.PickupLat,
		PickupLongitude: r.PickupLon,
		DeliveryMode:    entities.DeliveryMode(r.DeliveryMode),
	}
}

func (r *OrderCreate) ToEntity() entities.OrderPlacement {
	return entities.OrderPlacement{
		ListingID:     r.ListingID,
		Action:        entities.ActionKind(r.Action),
		Quantity:      r.Quantity,
		PaymentMode:   entities.PaymentMode(r.PaymentMode),
		BuyerLat:      r.BuyerLat,
		BuyerLon:      r.BuyerLon,
		BuyerCity:     r.BuyerCity,
		BuyerAreaCode: r.BuyerAreaCode,
		Notes:         r.Notes,
	}
}
