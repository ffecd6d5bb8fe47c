package delivery

import (
	"math"

	"marketplace/internal/entities"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	defaultRadiusKm  = 10
	maxRadiusKm      = 200
)

func normalizeFilter(filter entities.DeliveryJobFilter) (entities.DeliveryJobFilter, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return filter, ErrInvalidJobStatus
	}
	if (filter.Lat == nil) != (filter.Lon == nil) {
		return filter, ErrInvalidLocation
	}
	if filter.HasLocation() {
		if !validCoordinate(*filter.Lat, 90) || !validCoordinate(*filter.Lon, 180) {
			return filter, ErrInvalidLocation
		}
		if filter.RadiusKm < 0 || math.IsNaN(filter.RadiusKm) {
			return filter, ErrInvalidRadius
		}
		if filter.RadiusKm == 0 {
			filter.RadiusKm = defaultRadiusKm
		}
		filter.RadiusKm = math.Min(filter.RadiusKm, maxRadiusKm)
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	return filter, nil
}

func validCoordinate(v, bound float64) bool {
	return !math.IsNaN(v) && v >= -bound && v <= bound
}

// canManage создатель задачи, текущий исполнитель или админ.
func canManage(actor entities.Actor, job *entities.DeliveryJob) bool {
	return actor.IsAdmin() || job.CreatedBy == actor.ID || job.IsClaimedBy(actor.ID)
}
