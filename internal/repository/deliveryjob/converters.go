package deliveryjob

import "marketplace/internal/entities"

func ToDomain(j *DeliveryJobDB) *entities.DeliveryJob {
	if j == nil {
		return nil
	}
	return &entities.DeliveryJob{
		ID:              j.ID,
		ListingID:       j.ListingID,
		OrderID:         j.OrderID,
		CreatedBy:       j.CreatedBy,
		ClaimedBy:       j.ClaimedBy,
		PickupCity:      j.PickupCity,
		PickupAreaCode:  j.PickupAreaCode,
		PickupLatitude:  j.PickupLatitude,
		PickupLongitude: j.PickupLongitude,
		Status:          entities.DeliveryJobStatus(j.Status),
		DeliveryMode:    entities.DeliveryMode(j.DeliveryMode),
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func ToDomainList(jobsDB []DeliveryJobDB) []entities.DeliveryJob {
	if len(jobsDB) == 0 {
		return []entities.DeliveryJob{}
	}

	result := make([]entities.DeliveryJob, len(jobsDB))
	for i := range jobsDB {
		result[i] = *ToDomain(&jobsDB[i])
	}
	return result
}
