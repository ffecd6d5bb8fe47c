package order

import (
	"fmt"
	"strings"
	"time"

	"marketplace/internal/entities"
)

const (
	AuditOrderCreated       = "order.created"
	AuditOrderStatusChanged = "order.status_changed"
)

func orderURL(orderID int64) string {
	return fmt.Sprintf("/orders/%d", orderID)
}

func humanStatus(status entities.OrderStatusType) string {
	return strings.ReplaceAll(status.String(), "_", " ")
}

func placementEffects(order *entities.Order, listing *entities.Listing) entities.SideEffects {
	var effects entities.SideEffects

	effects.Notify(entities.NotificationCreate{
		UserID:     order.SellerID,
		Kind:       entities.NotifyOrderPlaced,
		Title:      "New order received",
		Body:       fmt.Sprintf("Order #%d for %q: %d x %.2f, payable %.2f (%s)", order.ID, listing.Title, order.Quantity, order.UnitPrice, order.PayableTotal, order.PaymentMode),
		EntityType: entities.EntityOrder,
		EntityID:   order.ID,
	}, orderURL(order.ID))

	effects.Publish(entities.RealtimeEvent{
		Name:          entities.EventOrdersUpdated,
		Payload:       orderPayload(order, ""),
		TargetUserIDs: []int64{order.BuyerID, order.SellerID},
	})

	effects.Log(entities.AuditAction{
		ActionType: AuditOrderCreated,
		EntityType: entities.EntityOrder,
		EntityID:   order.ID,
		ActorID:    order.BuyerID,
		Summary:    fmt.Sprintf("Order #%d placed for listing #%d", order.ID, order.ListingID),
		Details: map[string]any{
			"listingId":      order.ListingID,
			"action":         order.Action.String(),
			"quantity":       order.Quantity,
			"totalPrice":     order.TotalPrice,
			"deliveryCharge": order.DeliveryCharge,
			"payableTotal":   order.PayableTotal,
		},
		CreatedAt: time.Now().UTC(),
	})

	return effects
}

// transitionEffects уведомления участникам (кроме инициатора), orders.updated
// участникам и, если на переходе создавалась/находилась задача доставки, delivery.updated всем.
func transitionEffects(
	actor entities.Actor,
	previous entities.OrderStatusType,
	result *entities.TransitionResult,
	audience []int64,
) entities.SideEffects {
	var effects entities.SideEffects
	order := result.Order

	for _, userID := range order.Participants() {
		if userID == actor.ID {
			continue
		}
		effects.Notify(entities.NotificationCreate{
			UserID:     userID,
			Kind:       entities.NotifyOrderStatus,
			Title:      "Order status updated",
			Body:       statusMessage(order, userID),
			EntityType: entities.EntityOrder,
			EntityID:   order.ID,
		}, orderURL(order.ID))
	}

	effects.Publish(entities.RealtimeEvent{
		Name:          entities.EventOrdersUpdated,
		Payload:       orderPayload(order, previous),
		TargetUserIDs: order.Participants(),
	})

	if job := result.DeliveryJob; job != nil {
		change := "updated"
		if result.JobCreated {
			change = "created"
			for _, userID := range audience {
				effects.Notify(entities.NotificationCreate{
					UserID:     userID,
					Kind:       entities.NotifyJobAvailable,
					Title:      "New delivery job available",
					Body:       jobAvailableMessage(job),
					EntityType: entities.EntityDeliveryJob,
					EntityID:   job.ID,
				}, "/delivery/jobs")
			}
		}

		effects.Publish(entities.RealtimeEvent{
			Name: entities.EventDeliveryUpdated,
			Payload: map[string]any{
				"jobId":   job.ID,
				"orderId": order.ID,
				"status":  job.Status.String(),
				"change":  change,
			},
		})
	}

	effects.Log(entities.AuditAction{
		ActionType: AuditOrderStatusChanged,
		EntityType: entities.EntityOrder,
		EntityID:   order.ID,
		ActorID:    actor.ID,
		Summary:    fmt.Sprintf("Order #%d: %s -> %s", order.ID, previous, order.Status),
		Details: map[string]any{
			"from":       previous.String(),
			"to":         order.Status.String(),
			"actorRole":  actor.Role.String(),
			"jobCreated": result.JobCreated,
		},
		CreatedAt: time.Now().UTC(),
	})

	return effects
}

func statusMessage(order *entities.Order, userID int64) string {
	status := humanStatus(order.Status)
	switch userID {
	case order.BuyerID:
		return fmt.Sprintf("Your order #%d is now %s", order.ID, status)
	case order.SellerID:
		return fmt.Sprintf("Order #%d you are selling is now %s", order.ID, status)
	default:
		return fmt.Sprintf("Order #%d you are delivering is now %s", order.ID, status)
	}
}

func jobAvailableMessage(job *entities.DeliveryJob) string {
	place := job.PickupCity
	if job.PickupAreaCode != "" {
		place = strings.TrimSpace(place + " " + job.PickupAreaCode)
	}
	if place == "" {
		return fmt.Sprintf("Delivery job #%d is open for pickup", job.ID)
	}
	return fmt.Sprintf("Delivery job #%d is open for pickup in %s", job.ID, place)
}

func orderPayload(order *entities.Order, previous entities.OrderStatusType) map[string]any {
	payload := map[string]any{
		"orderId": order.ID,
		"status":  order.Status.String(),
	}
	if previous != "" {
		payload["previousStatus"] = previous.String()
	}
	return payload
}
