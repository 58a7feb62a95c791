// Package worker runs periodic maintenance in the background.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/mangaview/mangaview/internal/logger"
)

// Task is a job run every Interval until the worker stops.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type Worker struct {
	Tasks  []Task
	Logger *logger.Logger
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewWorker(log *logger.Logger, tasks ...Task) *Worker {
	if log == nil {
		log = logger.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		Tasks:  tasks,
		Logger: log.WithComponent("worker"),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *Worker) Start() {
	w.Logger.Info("Starting worker", "tasks", len(w.Tasks))
	for _, task := range w.Tasks {
		w.wg.Add(1)
		go w.loop(task)
	}
}

// Go runs a long-lived loop such as ratelimit.Limiter.Cleanup until the
// worker stops.
func (w *Worker) Go(fn func(ctx context.Context)) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn(w.ctx)
	}()
}

// Stop cancels every task and waits for running ones to return.
func (w *Worker) Stop() {
	w.Logger.Info("Stopping worker")
	w.cancel()
	w.wg.Wait()
}

func (w *Worker) loop(task Task) {
	defer w.wg.Done()
	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if err := task.Run(w.ctx); err != nil {
				w.Logger.Error("Task failed", "task", task.Name, "error", err)
			}
		}
	}
}

// CachePurger deletes expired cache rows. *store.DB satisfies it.
type CachePurger interface {
	PurgeExpiredCache() (int, error)
}

// PurgeCacheTask removes expired catalog cache entries.
func PurgeCacheTask(cache CachePurger, interval time.Duration, log *logger.Logger) Task {
	return Task{
		Name:     "purge_cache",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := cache.PurgeExpiredCache()
			if err != nil {
				return err
			}
			if n > 0 && log != nil {
				log.Debug("Purged expired cache entries", "count", n)
			}
			return nil
		},
	}
}
