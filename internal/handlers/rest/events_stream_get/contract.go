//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_stream_get_test
package events_stream_get

import (
	"marketplace/internal/pkg/realtime"
	"marketplace/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Registry interface {
	Register(userID int64) *realtime.Subscription
	Unregister(sub *realtime.Subscription)
}
