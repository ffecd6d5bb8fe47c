package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"marketplace/pkg/logger"
)

const (
	statusOK    = "ok"
	statusError = "error"
	statusPanic = "panic"
)

// Task периодическая фоновая задача.
type Task interface {
	// TTL интервал между запусками; <= 0 означает только прогрев.
	TTL() time.Duration
	Do(context.Context) error
	// Info имя задачи для логов и метрик.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Worker struct {
	log   handlerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает все задачи синхронно и запускает их по тикеру до отмены ctx.
// Ошибка или паника любой задачи на прогреве возвращается, Worker не создается.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			log.Info("initializing task", logger.NewField("task", task.Info()))
			return worker.execute(initCtx, task)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go worker.runPeriodic(ctx, task)
	}

	return worker, nil
}

// Wait блокируется, пока все периодические задачи не остановятся.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runPeriodic(ctx context.Context, task Task) {
	defer w.wg.Done()

	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("non-positive TTL, periodic execution disabled",
			logger.NewField("task", task.Info()),
			logger.NewField("ttl", ttl.String()),
		)
		return
	}

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("task stopped", logger.NewField("task", task.Info()))
			return
		case <-ticker.C:
			if err := w.execute(ctx, task); err != nil {
				w.log.Error("background task failed",
					logger.NewField("task", task.Info()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

// execute превращает панику задачи в ошибку и пишет метрики.
func (w *Worker) execute(ctx context.Context, task Task) (err error) {
	name := task.Info()
	start := time.Now()
	status := statusOK

	defer func() {
		if r := recover(); r != nil {
			status = statusPanic
			err = fmt.Errorf("task %s panic: %v\n%s", name, r, debug.Stack())
		}
		TaskRunsTotal.WithLabelValues(name, status).Inc()
		TaskDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	if err = task.Do(ctx); err != nil {
		status = statusError
	}
	return err
}
