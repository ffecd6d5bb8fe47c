package deliveryjob

import (
	"math"

	sq "github.com/Masterminds/squirrel"
)

const kmPerDegreeLat = 111.32

type boundingBox struct {
	lat, lon       float64
	cosLat         float64
	minLat, maxLat float64
	minLon, maxLon float64
	// wrapsLon прямоугольник пересекает ±180, долгота нормализована в minLon > maxLon
	wrapsLon bool
	// anyLon у полюса или при огромном радиусе долготу не ограничиваем
	anyLon bool
}

// newBoundingBox грубый прямоугольник вокруг точки. Точное расстояние
// считает сервис, здесь только отсекаем заведомо далекие задачи.
func newBoundingBox(lat, lon, radiusKm float64) boundingBox {
	dLat := radiusKm / kmPerDegreeLat
	cosLat := math.Max(math.Cos(lat*math.Pi/180), 0.01)
	dLon := radiusKm / (kmPerDegreeLat * cosLat)

	box := boundingBox{
		lat:    lat,
		lon:    lon,
		cosLat: cosLat,
		minLat: math.Max(lat-dLat, -90),
		maxLat: math.Min(lat+dLat, 90),
		minLon: lon - dLon,
		maxLon: lon + dLon,
	}

	switch {
	case dLon >= 180:
		box.anyLon = true
	case box.minLon < -180:
		box.minLon += 360
		box.wrapsLon = true
	case box.maxLon > 180:
		box.maxLon -= 360
		box.wrapsLon = true
	}
	return box
}

func (b boundingBox) where() sq.And {
	where := sq.And{sq.Expr("pickup_latitude BETWEEN ? AND ?", b.minLat, b.maxLat)}

	switch {
	case b.anyLon:
		where = append(where, sq.Expr("pickup_longitude IS NOT NULL"))
	case b.wrapsLon:
		where = append(where, sq.Or{
			sq.Expr("pickup_longitude >= ?", b.minLon),
			sq.Expr("pickup_longitude <= ?", b.maxLon),
		})
	default:
		where = append(where, sq.Expr("pickup_longitude BETWEEN ? AND ?", b.minLon, b.maxLon))
	}
	return where
}

// nearestFirst равнопрямоугольная проекция: для порядка кандидатов этого хватает,
// разница долгот берется по короткой дуге.
func (b boundingBox) nearestFirst() sq.Sqlizer {
	return sq.Expr(`POWER(pickup_latitude - ?, 2) +
		POWER(LEAST(ABS(pickup_longitude - ?), 360 - ABS(pickup_longitude - ?)) * ?, 2)`,
		b.lat, b.lon, b.lon, b.cosLat)
}
