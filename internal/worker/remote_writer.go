package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/farahcakes/bakery-engine/pkg/logger"
)

type task struct {
	description string
	run         func(ctx context.Context)
}

// RemoteWriter drains best-effort remote store writes off the mutation path.
// Local state is already durable by the time a task is enqueued, so a dropped
// or failed task costs consistency convergence, never data.
type RemoteWriter struct {
	tasks        chan task
	logger       *logger.Logger
	workerCount  int
	taskTimeout  time.Duration
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewRemoteWriter(logger *logger.Logger, workerCount int, queueSize int, taskTimeout time.Duration) *RemoteWriter {
	return &RemoteWriter{
		tasks:        make(chan task, queueSize),
		logger:       logger,
		workerCount:  workerCount,
		taskTimeout:  taskTimeout,
		shutdownChan: make(chan struct{}),
	}
}

func (w *RemoteWriter) Start() {
	w.logger.Info("Starting remote writer workers...")

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

// Stop drains queued tasks and waits for in-flight ones.
func (w *RemoteWriter) Stop() {
	w.logger.Info("Stopping remote writer workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All remote writer workers stopped")
}

// Enqueue schedules a remote write. When the queue is full the task is
// dropped with a log line: the write was best-effort to begin with.
func (w *RemoteWriter) Enqueue(description string, run func(ctx context.Context)) {
	select {
	case w.tasks <- task{description: description, run: run}:
	default:
		w.logger.Warn("remote write queue full, dropping task", zap.String("task", description))
	}
}

func (w *RemoteWriter) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Remote writer %d started", workerID)

	for {
		select {
		case t := <-w.tasks:
			w.runTask(t)
		case <-w.shutdownChan:
			// Drain what is already queued before exiting.
			for {
				select {
				case t := <-w.tasks:
					w.runTask(t)
				default:
					w.logger.Infof("Remote writer %d shutting down", workerID)
					return
				}
			}
		}
	}
}

func (w *RemoteWriter) runTask(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), w.taskTimeout)
	defer cancel()
	t.run(ctx)
}
