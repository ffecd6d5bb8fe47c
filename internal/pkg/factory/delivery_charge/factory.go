package delivery_charge

import (
	"math"

	"github.com/shopspring/decimal"
	"marketplace/internal/entities"
)

const (
	earthRadiusKm = 6371.0
	chargeStepKm  = 10
	moneyPlaces   = 2
)

type ChargeCalculator struct{}

func New() *ChargeCalculator {
	return &ChargeCalculator{}
}

// DistanceKm расстояние по большому кругу (haversine).
// Отсутствующая или нечисловая координата дает 0, а не ошибку.
func (c *ChargeCalculator) DistanceKm(lat1, lon1, lat2, lon2 *float64) float64 {
	if !finite(lat1) || !finite(lon1) || !finite(lat2) || !finite(lon2) {
		return 0
	}

	dLat := degreesToRadians(*lat2 - *lat1)
	dLon := degreesToRadians(*lon2 - *lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(*lat1))*math.Cos(degreesToRadians(*lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	a = math.Min(1, a)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DeliveryCharge ceil(distance / 10) * rate, 0 если одно из значений не положительно.
func (c *ChargeCalculator) DeliveryCharge(distanceKm, ratePer10Km float64) float64 {
	if !(distanceKm > 0) || !(ratePer10Km > 0) || math.IsInf(distanceKm, 0) || math.IsInf(ratePer10Km, 0) {
		return 0
	}

	steps := math.Ceil(distanceKm / chargeStepKm)
	charge := decimal.NewFromFloat(steps).Mul(decimal.NewFromFloat(ratePer10Km))
	return toMoney(charge)
}

func (c *ChargeCalculator) Quote(unitPrice float64, quantity int, distanceKm, ratePer10Km float64) entities.Quote {
	total := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	totalPrice := toMoney(total)

	// сбор считается от сохраняемого (округленного) расстояния
	distance := RoundMoney(distanceKm)
	charge := c.DeliveryCharge(distance, ratePer10Km)
	payable := decimal.NewFromFloat(totalPrice).Add(decimal.NewFromFloat(charge))

	return entities.Quote{
		TotalPrice:     totalPrice,
		DistanceKm:     distance,
		DeliveryCharge: charge,
		PayableTotal:   toMoney(payable),
	}
}

// RoundMoney округление до 2 знаков (half away from zero).
func RoundMoney(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return toMoney(decimal.NewFromFloat(v))
}

func toMoney(d decimal.Decimal) float64 {
	return d.Round(moneyPlaces).InexactFloat64()
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
