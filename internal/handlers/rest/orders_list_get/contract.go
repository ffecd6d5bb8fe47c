//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_list_get_test
package orders_list_get

import (
	"context"

	"marketplace/internal/entities"
	"marketplace/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ListOrders(ctx context.Context, actorID int64, scope entities.OrderScope, filter entities.OrderFilter) ([]entities.Order, entities.Page, error)
}
