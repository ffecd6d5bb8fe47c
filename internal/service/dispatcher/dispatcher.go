package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"marketplace/internal/entities"
	"marketplace/internal/pkg/realtime"
	"marketplace/pkg/logger"
)

const (
	kindNotification = "notification"
	kindRealtime     = "realtime"
	kindPush         = "push"
	kindAudit        = "audit"

	defaultTimeout     = 10 * time.Second
	defaultParallelism = 8
)

// Dispatcher выполняет побочные эффекты после коммита основной операции.
// Ошибка одного эффекта логируется и не мешает остальным.
type Dispatcher struct {
	notifications NotificationRepository
	publisher     Publisher
	push          PushGateway
	audit         AuditLog
	log           logger.Logger

	timeout     time.Duration
	parallelism int

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func New(
	notifications NotificationRepository,
	publisher Publisher,
	push PushGateway,
	audit AuditLog,
	log logger.Logger,
	timeout time.Duration,
) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		notifications: notifications,
		publisher:     publisher,
		push:          push,
		audit:         audit,
		log:           log,
		timeout:       timeout,
		parallelism:   defaultParallelism,
	}
}

// Dispatch не блокирует вызывающего: эффекты выполняются в фоне со своим таймаутом,
// отмена HTTP запроса на них не влияет.
func (d *Dispatcher) Dispatch(effects entities.SideEffects) {
	if effects.IsEmpty() {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.log.Warn("side effects dropped", logger.NewField("error", ErrClosed))
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	DispatchInFlight.Inc()
	go func() {
		defer d.wg.Done()
		defer DispatchInFlight.Dec()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		_ = d.Execute(ctx, effects)
	}()
}

// Execute синхронно. Сначала сохраняются уведомления, чтобы клиент, получивший
// notifications.invalidate, уже видел запись; остальное параллельно.
// Возвращает объединенную ошибку всех упавших эффектов (для логов и тестов).
func (d *Dispatcher) Execute(ctx context.Context, effects entities.SideEffects) error {
	var (
		mu   sync.Mutex
		errs []error
	)
	collect := func(kind string, err error, fields ...logger.Field) {
		if err == nil {
			SideEffectsTotal.WithLabelValues(kind, "ok").Inc()
			return
		}
		SideEffectsTotal.WithLabelValues(kind, "error").Inc()

		err = fmt.Errorf("%w: %s: %w", ErrDependency, kind, err)
		d.log.Warn("side effect failed", append(fields, logger.NewField("error", err))...)

		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	notifyGroup := d.group()
	for _, n := range effects.Notifications {
		notifyGroup.Go(func() error {
			_, err := d.notifications.Create(ctx, n)
			collect(kindNotification, err,
				logger.NewField("user_id", n.UserID),
				logger.NewField("kind", string(n.Kind)),
			)
			return nil
		})
	}
	_ = notifyGroup.Wait()

	group := d.group()
	for _, event := range effects.Events {
		group.Go(func() error {
			_, err := d.publisher.Publish(realtime.Event{
				Name:          event.Name,
				Payload:       event.Payload,
				TargetUserIDs: event.TargetUserIDs,
			})
			collect(kindRealtime, err, logger.NewField("event", event.Name))
			return nil
		})
	}
	for _, p := range effects.Pushes {
		group.Go(func() error {
			_, err := d.push.PushToUser(ctx, p.UserID, p.Message)
			collect(kindPush, err, logger.NewField("user_id", p.UserID))
			return nil
		})
	}
	for _, action := range effects.Audit {
		group.Go(func() error {
			err := d.audit.LogAction(ctx, action)
			collect(kindAudit, err,
				logger.NewField("action", action.ActionType),
				logger.NewField("entity_id", action.EntityID),
			)
			return nil
		})
	}
	_ = group.Wait()

	return errors.Join(errs...)
}

// Close перестает принимать новые эффекты и ждет завершения начатых.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain side effects: %w", ctx.Err())
	}
}

func (d *Dispatcher) group() *errgroup.Group {
	g := &errgroup.Group{}
	g.SetLimit(d.parallelism)
	return g
}
