//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatcher_test
package dispatcher

import (
	"context"

	"marketplace/internal/entities"
	"marketplace/internal/pkg/realtime"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification entities.NotificationCreate) (*entities.Notification, error)
}

type Publisher interface {
	Publish(event realtime.Event) (int, error)
}

type PushGateway interface {
	PushToUser(ctx context.Context, userID int64, message entities.PushMessage) (int, error)
}

type AuditLog interface {
	LogAction(ctx context.Context, action entities.AuditAction) error
}
