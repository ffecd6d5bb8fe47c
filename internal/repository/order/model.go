package order

import "time"

type OrderDB struct {
	ID                  int64
	ListingID           int64
	BuyerID             int64
	SellerID            int64
	DeliveryPartnerID   *int64
	Action              string
	Quantity            int
	UnitPrice           float64
	TotalPrice          float64
	DistanceKm          float64
	DeliveryRatePer10Km float64
	DeliveryCharge      float64
	PayableTotal        float64
	PaymentMode         string
	PaymentState        string
	Status              string
	DeliveryMode        string
	BuyerCity           string
	BuyerAreaCode       string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

var columns = []string{
	"id", "listing_id", "buyer_id", "seller_id", "delivery_partner_id",
	"action", "quantity", "unit_price", "total_price", "distance_km",
	"delivery_rate_per_10km", "delivery_charge", "payable_total",
	"payment_mode", "payment_state", "status", "delivery_mode",
	"buyer_city", "buyer_area_code", "notes", "created_at", "updated_at",
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*OrderDB, error) {
	var o OrderDB
	err := row.Scan(
		&o.ID,
		&o.ListingID,
		&o.BuyerID,
		&o.SellerID,
		&o.DeliveryPartnerID,
		&o.Action,
		&o.Quantity,
		&o.UnitPrice,
		&o.TotalPrice,
		&o.DistanceKm,
		&o.DeliveryRatePer10Km,
		&o.DeliveryCharge,
		&o.PayableTotal,
		&o.PaymentMode,
		&o.PaymentState,
		&o.Status,
		&o.DeliveryMode,
		&o.BuyerCity,
		&o.BuyerAreaCode,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
