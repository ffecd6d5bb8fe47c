package entities

import "time"

type NotificationKind string

const (
	NotifyOrderPlaced       NotificationKind = "order_placed"
	NotifyOrderStatus       NotificationKind = "order_status"
	NotifyJobAvailable      NotificationKind = "delivery_job_available"
	NotifyDeliveryAssigned  NotificationKind = "delivery_assigned"
	NotifyDeliveryJobUpdate NotificationKind = "delivery_job_updated"
)

type EntityType string

const (
	EntityOrder       EntityType = "order"
	EntityDeliveryJob EntityType = "delivery_job"
)

type Notification struct {
	ID         int64
	UserID     int64
	Kind       NotificationKind
	Title      string
	Body       string
	EntityType EntityType
	EntityID   int64
	IsRead     bool
	CreatedAt  time.Time
}

type NotificationCreate struct {
	UserID     int64
	Kind       NotificationKind
	Title      string
	Body       string
	EntityType EntityType
	EntityID   int64
}

type PushMessage struct {
	Title string
	Body  string
	URL   string
}

type PushDelivery struct {
	UserID  int64
	Message PushMessage
}

type AuditAction struct {
	ActionType string
	EntityType EntityType
	EntityID   int64
	ActorID    int64
	Summary    string
	Details    map[string]any
	CreatedAt  time.Time
}
