//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ping_get_test
package ping_get

import (
	"marketplace/pkg/logger"
)

// SubscriberCounter число открытых SSE подписок.
type SubscriberCounter interface {
	Len() int
}

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
