package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"route-engine/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Task периодическая задача: свип билдера, reaper просроченных claim.
type Task interface {
	// TTL интервал между запусками.
	TTL() time.Duration

	Do(context.Context) error

	// Info имя задачи для логов и метрик.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

// Worker гоняет задачи по тикеру до отмены контекста.
type Worker struct {
	log handlerLogger
	wg  sync.WaitGroup
}

// New сначала прогревает задачи: все выполняются по одному разу параллельно,
// первая ошибка или паника возвращается и Worker не создается.
// Затем каждая задача уходит в свой цикл с периодом TTL.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	w := &Worker{log: log}

	warmup, warmupCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		warmup.Go(func() error {
			return w.run(warmupCtx, task)
		})
	}
	if err := warmup.Wait(); err != nil {
		return nil, fmt.Errorf("background warm-up: %w", err)
	}

	for _, task := range tasks {
		w.wg.Add(1)
		go w.loop(ctx, task)
	}
	return w, nil
}

// Wait ждет выхода всех циклов после отмены контекста.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context, task Task) {
	defer w.wg.Done()

	name := task.Info()
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("task has no period, runs only at startup",
			logger.NewField("task", name),
		)
		return
	}

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("task stopped", logger.NewField("task", name))
			return
		case <-ticker.C:
			if err := w.run(ctx, task); err != nil {
				w.log.Error("task run failed",
					logger.NewField("task", name),
					logger.NewField("error", err),
				)
			}
		}
	}
}

// run выполняет задачу один раз, паника превращается в ошибку.
func (w *Worker) run(ctx context.Context, task Task) (err error) {
	name := task.Info()
	start := time.Now()
	result := "ok"

	defer func() {
		if r := recover(); r != nil {
			result = "panic"
			err = fmt.Errorf("task %s panicked: %v", name, r)
			w.log.Error("task panic",
				logger.NewField("task", name),
				logger.NewField("stack", string(debug.Stack())),
			)
		}
		taskDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		taskRuns.WithLabelValues(name, result).Inc()
	}()

	if err = task.Do(ctx); err != nil {
		result = "error"
	}
	return err
}
