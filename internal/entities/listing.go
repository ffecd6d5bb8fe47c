package entities

// Listing объявление маркетплейса. Принадлежит внешнему модулю объявлений,
// здесь только поля, нужные заказам и доставке.
type Listing struct {
	ID                  int64
	CreatedBy           int64
	Title               string
	Price               float64
	ListingType         ActionKind
	Latitude            *float64
	Longitude           *float64
	City                string
	AreaCode            string
	DeliveryRatePer10Km float64
	DeliveryMode        DeliveryMode
}
