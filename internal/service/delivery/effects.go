package delivery

import (
	"fmt"
	"time"

	"marketplace/internal/entities"
)

const (
	AuditJobCreated = "delivery_job.created"
	AuditJobClaimed = "delivery_job.claimed"
	AuditJobUpdated = "delivery_job.status_changed"
	AuditJobDeleted = "delivery_job.deleted"

	jobsURL = "/delivery/jobs"
)

func jobURL(jobID int64) string {
	return fmt.Sprintf("%s/%d", jobsURL, jobID)
}

func jobPayload(job *entities.DeliveryJob, change string) map[string]any {
	payload := map[string]any{
		"jobId":  job.ID,
		"status": job.Status.String(),
		"change": change,
	}
	if job.OrderID != nil {
		payload["orderId"] = *job.OrderID
	}
	return payload
}

func createdEffects(actor entities.Actor, job *entities.DeliveryJob, audience []int64) entities.SideEffects {
	var effects entities.SideEffects

	for _, userID := range audience {
		effects.Notify(entities.NotificationCreate{
			UserID:     userID,
			Kind:       entities.NotifyJobAvailable,
			Title:      "New delivery job available",
			Body:       fmt.Sprintf("Delivery job #%d is open for pickup in %s", job.ID, job.PickupCity),
			EntityType: entities.EntityDeliveryJob,
			EntityID:   job.ID,
		}, jobsURL)
	}

	effects.Publish(entities.RealtimeEvent{
		Name:    entities.EventDeliveryUpdated,
		Payload: jobPayload(job, "created"),
	})
	effects.Log(jobAudit(AuditJobCreated, actor, job, fmt.Sprintf("Delivery job #%d created for listing #%d", job.ID, job.ListingID)))

	return effects
}

// claimEffects создателю задачи и, если есть заказ, покупателю и продавцу
// уходит "назначен курьер", отдельно от уведомлений о смене статуса.
func claimEffects(actor entities.Actor, job *entities.DeliveryJob, order *entities.Order) entities.SideEffects {
	var effects entities.SideEffects
	notified := map[int64]struct{}{actor.ID: {}}

	if _, ok := notified[job.CreatedBy]; !ok {
		notified[job.CreatedBy] = struct{}{}
		effects.Notify(entities.NotificationCreate{
			UserID:     job.CreatedBy,
			Kind:       entities.NotifyDeliveryAssigned,
			Title:      "Delivery job claimed",
			Body:       fmt.Sprintf("Delivery job #%d was claimed by a delivery partner", job.ID),
			EntityType: entities.EntityDeliveryJob,
			EntityID:   job.ID,
		}, jobURL(job.ID))
	}

	if order != nil {
		for _, userID := range []int64{order.BuyerID, order.SellerID} {
			if _, ok := notified[userID]; ok {
				continue
			}
			notified[userID] = struct{}{}
			effects.Notify(entities.NotificationCreate{
				UserID:     userID,
				Kind:       entities.NotifyDeliveryAssigned,
				Title:      "Delivery partner assigned",
				Body:       fmt.Sprintf("A delivery partner is now assigned to order #%d", order.ID),
				EntityType: entities.EntityOrder,
				EntityID:   order.ID,
			}, fmt.Sprintf("/orders/%d", order.ID))
		}
	}

	effects.Publish(entities.RealtimeEvent{
		Name:    entities.EventDeliveryUpdated,
		Payload: jobPayload(job, "claimed"),
	})
	if order != nil {
		effects.Publish(entities.RealtimeEvent{
			Name: entities.EventOrdersUpdated,
			Payload: map[string]any{
				"orderId":           order.ID,
				"status":            order.Status.String(),
				"deliveryPartnerId": actor.ID,
			},
			TargetUserIDs: []int64{order.BuyerID, order.SellerID},
		})
	}
	effects.Log(jobAudit(AuditJobClaimed, actor, job, fmt.Sprintf("Delivery job #%d claimed by user #%d", job.ID, actor.ID)))

	return effects
}

func jobUpdatedEffects(actor entities.Actor, previous, job *entities.DeliveryJob) entities.SideEffects {
	var effects entities.SideEffects

	recipients := []int64{previous.CreatedBy}
	if previous.ClaimedBy != nil && *previous.ClaimedBy != previous.CreatedBy {
		recipients = append(recipients, *previous.ClaimedBy)
	}
	for _, userID := range recipients {
		if userID == actor.ID {
			continue
		}
		effects.Notify(entities.NotificationCreate{
			UserID:     userID,
			Kind:       entities.NotifyDeliveryJobUpdate,
			Title:      "Delivery job updated",
			Body:       fmt.Sprintf("Delivery job #%d is now %s", job.ID, job.Status),
			EntityType: entities.EntityDeliveryJob,
			EntityID:   job.ID,
		}, jobURL(job.ID))
	}

	effects.Publish(entities.RealtimeEvent{
		Name:    entities.EventDeliveryUpdated,
		Payload: jobPayload(job, "updated"),
	})
	action := jobAudit(AuditJobUpdated, actor, job, fmt.Sprintf("Delivery job #%d: %s -> %s", job.ID, previous.Status, job.Status))
	action.Details["from"] = previous.Status.String()
	effects.Log(action)

	return effects
}

func jobDeletedEffects(actor entities.Actor, job *entities.DeliveryJob) entities.SideEffects {
	var effects entities.SideEffects

	effects.Publish(entities.RealtimeEvent{
		Name:    entities.EventDeliveryUpdated,
		Payload: jobPayload(job, "deleted"),
	})
	effects.Log(jobAudit(AuditJobDeleted, actor, job, fmt.Sprintf("Delivery job #%d deleted", job.ID)))

	return effects
}

func jobAudit(actionType string, actor entities.Actor, job *entities.DeliveryJob, summary string) entities.AuditAction {
	details := map[string]any{
		"status":    job.Status.String(),
		"listingId": job.ListingID,
		"actorRole": actor.Role.String(),
	}
	if job.OrderID != nil {
		details["orderId"] = *job.OrderID
	}
	return entities.AuditAction{
		ActionType: actionType,
		EntityType: entities.EntityDeliveryJob,
		EntityID:   job.ID,
		ActorID:    actor.ID,
		Summary:    summary,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
}
