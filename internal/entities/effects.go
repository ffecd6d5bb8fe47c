package entities

const (
	EventOrdersUpdated           = "orders.updated"
	EventDeliveryUpdated         = "delivery.updated"
	EventNotificationsInvalidate = "notifications.invalidate"
)

// RealtimeEvent событие для SSE. Пустой TargetUserIDs означает всех клиентов.
type RealtimeEvent struct {
	Name          string
	Payload       map[string]any
	TargetUserIDs []int64
}

// SideEffects побочные эффекты перехода, выполняются после коммита.
type SideEffects struct {
	Notifications []NotificationCreate
	Events        []RealtimeEvent
	Pushes        []PushDelivery
	Audit         []AuditAction
}

func (e *SideEffects) IsEmpty() bool {
	return len(e.Notifications) == 0 && len(e.Events) == 0 && len(e.Pushes) == 0 && len(e.Audit) == 0
}

// Notify добавляет уведомление вместе с notifications.invalidate и push для того же пользователя.
func (e *SideEffects) Notify(n NotificationCreate, url string) {
	e.Notifications = append(e.Notifications, n)
	e.Events = append(e.Events, RealtimeEvent{
		Name:          EventNotificationsInvalidate,
		Payload:       map[string]any{"kind": string(n.Kind), "entityType": string(n.EntityType), "entityId": n.EntityID},
		TargetUserIDs: []int64{n.UserID},
	})
	e.Pushes = append(e.Pushes, PushDelivery{
		UserID:  n.UserID,
		Message: PushMessage{Title: n.Title, Body: n.Body, URL: url},
	})
}

func (e *SideEffects) Publish(event RealtimeEvent) {
	e.Events = append(e.Events, event)
}

func (e *SideEffects) Log(action AuditAction) {
	e.Audit = append(e.Audit, action)
}

type TransitionResult struct {
	Order       *Order
	DeliveryJob *DeliveryJob
	JobCreated  bool
	Effects     SideEffects
}

type ClaimResult struct {
	Job     *DeliveryJob
	Order   *Order
	Effects SideEffects
}
