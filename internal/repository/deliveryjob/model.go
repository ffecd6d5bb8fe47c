package deliveryjob

import "time"

type DeliveryJobDB struct {
	ID              int64
	ListingID       int64
	OrderID         *int64
	CreatedBy       int64
	ClaimedBy       *int64
	PickupCity      string
	PickupAreaCode  string
	PickupLatitude  *float64
	PickupLongitude *float64
	Status          string
	DeliveryMode    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var columns = []string{
	"id", "listing_id", "order_id", "created_by", "claimed_by",
	"pickup_city", "pickup_area_code", "pickup_latitude", "pickup_longitude",
	"status", "delivery_mode", "created_at", "updated_at",
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*DeliveryJobDB, error) {
	var j DeliveryJobDB
	err := row.Scan(
		&j.ID,
		&j.ListingID,
		&j.OrderID,
		&j.CreatedBy,
		&j.ClaimedBy,
		&j.PickupCity,
		&j.PickupAreaCode,
		&j.PickupLatitude,
		&j.PickupLongitude,
		&j.Status,
		&j.DeliveryMode,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}
