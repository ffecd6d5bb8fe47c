package dto

import "time"

type Order struct {
	ID                  int64     `json:"id"`
	ListingID           int64     `json:"listingId"`
	BuyerID             int64     `json:"buyerId"`
	SellerID            int64     `json:"sellerId"`
	DeliveryPartnerID   *int64    `json:"deliveryPartnerId"`
	Action              string    `json:"action"`
	Quantity            int       `json:"quantity"`
	UnitPrice           float64   `json:"unitPrice"`
	TotalPrice          float64   `json:"totalPrice"`
	DistanceKm          float64   `json:"distanceKm"`
	DeliveryRatePer10Km float64   `json:"deliveryRatePer10Km"`
	DeliveryCharge      float64   `json:"deliveryCharge"`
	PayableTotal        float64   `json:"payableTotal"`
	PaymentMode         string    `json:"paymentMode"`
	PaymentState        string    `json:"paymentState"`
	Status              string    `json:"status"`
	DeliveryMode        string    `json:"deliveryMode"`
	BuyerCity           string    `json:"buyerCity"`
	BuyerAreaCode       string    `json:"buyerAreaCode"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type DeliveryJob struct {
	ID              int64     `json:"id"`
	ListingID       int64     `json:"listingId"`
	OrderID         *int64    `json:"orderId"`
	CreatedBy       int64     `json:"createdBy"`
	ClaimedBy       *int64    `json:"claimedBy"`
	PickupCity      string    `json:"pickupCity"`
	PickupAreaCode  string    `json:"pickupAreaCode"`
	PickupLatitude  *float64  `json:"pickupLatitude"`
	PickupLongitude *float64  `json:"pickupLongitude"`
	Status          string    `json:"status"`
	DeliveryMode    string    `json:"deliveryMode"`
	DistanceKm      *float64  `json:"distanceKm,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type OrderCreate struct {
	ListingID     int64    `json:"listingId"`
	Action        string   `json:"action"`
	Quantity      int      `json:"quantity"`
	PaymentMode   string   `json:"paymentMode"`
	BuyerLat      *float64 `json:"buyerLat"`
	BuyerLon      *float64 `json:"buyerLon"`
	BuyerCity     string   `json:"buyerCity"`
	BuyerAreaCode string   `json:"buyerAreaCode"`
	Notes         string   `json:"notes"`
}

type DeliveryJobCreate struct {
	ListingID      int64    `json:"listingId"`
	OrderID        *int64   `json:"orderId"`
	PickupCity     string   `json:"pickupCity"`
	PickupAreaCode string   `json:"pickupAreaCode"`
	PickupLat      *float64 `json:"pickupLat"`
	PickupLon      *float64 `json:"pickupLon"`
	DeliveryMode   string   `json:"deliveryMode"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type Meta struct {
	Total  uint64 `json:"total"`
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type OrderList struct {
	Data []Order `json:"data"`
	Meta Meta    `json:"meta"`
}

type DeliveryJobList struct {
	Data []DeliveryJob `json:"data"`
	Meta Meta          `json:"meta"`
}

type OrderResponse struct {
	OK    bool  `json:"ok"`
	Order Order `json:"order"`
}

type TransitionResponse struct {
	OK          bool         `json:"ok"`
	Order       Order        `json:"order"`
	DeliveryJob *DeliveryJob `json:"deliveryJob"`
}

type DeliveryJobResponse struct {
	OK  bool        `json:"ok"`
	Job DeliveryJob `json:"job"`
}

type ClaimResponse struct {
	OK    bool        `json:"ok"`
	Job   DeliveryJob `json:"job"`
	Order *Order      `json:"order"`
}

type Error struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Code   string `json:"code"`
	Reason string `json:"reason,omitempty"`
}

type PingResponse struct {
	Message             string `json:"message"`
	RealtimeSubscribers int    `json:"realtimeSubscribers"`
}
