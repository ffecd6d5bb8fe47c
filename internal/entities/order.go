package entities

import "time"

type Order struct {
	ID                int64
	ListingID         int64
	BuyerID           int64
	SellerID          int64
	DeliveryPartnerID *int64

	Action              ActionKind
	Quantity            int
	UnitPrice           float64
	TotalPrice          float64
	DistanceKm          float64
	DeliveryRatePer10Km float64
	DeliveryCharge      float64
	PayableTotal        float64

	PaymentMode  PaymentMode
	PaymentState PaymentState
	Status       OrderStatusType
	DeliveryMode DeliveryMode

	BuyerCity     string
	BuyerAreaCode string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Participants покупатель, продавец и курьер (если назначен), без повторов.
func (o *Order) Participants() []int64 {
	ids := []int64{o.BuyerID}
	if o.SellerID != o.BuyerID {
		ids = append(ids, o.SellerID)
	}
	if o.DeliveryPartnerID != nil && *o.DeliveryPartnerID != o.BuyerID && *o.DeliveryPartnerID != o.SellerID {
		ids = append(ids, *o.DeliveryPartnerID)
	}
	return ids
}

func (o *Order) HasDeliveryPartner(userID int64) bool {
	return o.DeliveryPartnerID != nil && *o.DeliveryPartnerID == userID
}

type OrderStatusType string

const (
	OrderReceived       OrderStatusType = "received"
	OrderPacking        OrderStatusType = "packing"
	OrderShipping       OrderStatusType = "shipping"
	OrderOutForDelivery OrderStatusType = "out_for_delivery"
	OrderDelivered      OrderStatusType = "delivered"
	OrderCancelled      OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderReceived, OrderPacking, OrderShipping, OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal delivered и cancelled не допускают дальнейших переходов.
func (s OrderStatusType) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type ActionKind string

const (
	ActionBuy  ActionKind = "buy"
	ActionRent ActionKind = "rent"
)

func (a ActionKind) String() string {
	return string(a)
}

type PaymentMode string

// PaymentCOD единственный поддерживаемый способ оплаты.
const PaymentCOD PaymentMode = "cod"

func (m PaymentMode) String() string {
	return string(m)
}

type PaymentState string

const (
	PaymentDue  PaymentState = "cod_due"
	PaymentPaid PaymentState = "paid"
)

func (s PaymentState) String() string {
	return string(s)
}

// Quote расчет суммы заказа, деньги округлены до 2 знаков.
type Quote struct {
	TotalPrice     float64
	DistanceKm     float64
	DeliveryCharge float64
	PayableTotal   float64
}

type OrderCreate struct {
	ListingID           int64
	BuyerID             int64
	SellerID            int64
	Action              ActionKind
	Quantity            int
	UnitPrice           float64
	TotalPrice          float64
	DistanceKm          float64
	DeliveryRatePer10Km float64
	DeliveryCharge      float64
	PayableTotal        float64
	PaymentMode         PaymentMode
	DeliveryMode        DeliveryMode
	BuyerCity           string
	BuyerAreaCode       string
	Notes               string
}

// OrderPlacement то, что присылает покупатель. Суммы клиента не принимаются.
type OrderPlacement struct {
	ListingID     int64
	Action        ActionKind
	Quantity      int
	PaymentMode   PaymentMode
	BuyerLat      *float64
	BuyerLon      *float64
	BuyerCity     string
	BuyerAreaCode string
	Notes         string
}

type OrderScope string

const (
	ScopeBuyer    OrderScope = "buyer"
	ScopeSeller   OrderScope = "seller"
	ScopeDelivery OrderScope = "delivery"
)

type OrderFilter struct {
	Status *OrderStatusType
	Limit  uint64
	Offset uint64
}

// Page итог постраничной выборки с уже нормализованными limit/offset.
type Page struct {
	Total  uint64
	Limit  uint64
	Offset uint64
}
