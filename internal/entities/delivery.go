package entities

import "time"

type DeliveryJob struct {
	ID        int64
	ListingID int64
	OrderID   *int64
	CreatedBy int64
	ClaimedBy *int64

	PickupCity      string
	PickupAreaCode  string
	PickupLatitude  *float64
	PickupLongitude *float64

	Status       DeliveryJobStatus
	DeliveryMode DeliveryMode
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DistanceKm заполняется только при поиске по координатам.
	DistanceKm *float64
}

func (j *DeliveryJob) IsClaimedBy(userID int64) bool {
	return j.ClaimedBy != nil && *j.ClaimedBy == userID
}

type DeliveryJobStatus string

const (
	JobOpen      DeliveryJobStatus = "open"
	JobClaimed   DeliveryJobStatus = "claimed"
	JobCompleted DeliveryJobStatus = "completed"
	JobCancelled DeliveryJobStatus = "cancelled"
)

func (s DeliveryJobStatus) String() string {
	return string(s)
}

func (s DeliveryJobStatus) IsValid() bool {
	switch s {
	case JobOpen, JobClaimed, JobCompleted, JobCancelled:
		return true
	default:
		return false
	}
}

func (s DeliveryJobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobCancelled
}

type DeliveryMode string

const (
	DeliveryPeerToPeer DeliveryMode = "peer_to_peer"
	DeliveryPlatform   DeliveryMode = "platform"
	DeliverySelfPickup DeliveryMode = "self_pickup"
)

func (m DeliveryMode) String() string {
	return string(m)
}

// RequiresHandoff нужен ли курьер между продавцом и покупателем.
func (m DeliveryMode) RequiresHandoff() bool {
	return m == DeliveryPeerToPeer || m == DeliveryPlatform
}

type DeliveryJobCreate struct {
	ListingID       int64
	OrderID         *int64
	CreatedBy       int64
	PickupCity      string
	PickupAreaCode  string
	PickupLatitude  *float64
	PickupLongitude *float64
	DeliveryMode    DeliveryMode
}

type DeliveryJobFilter struct {
	Status   *DeliveryJobStatus
	Lat      *float64
	Lon      *float64
	RadiusKm float64
	Limit    uint64
	Offset   uint64
}

func (f DeliveryJobFilter) HasLocation() bool {
	return f.Lat != nil && f.Lon != nil
}
