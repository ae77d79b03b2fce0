package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farahcakes/bakery-engine/pkg/logger"
)

func TestRemoteWriter_RunsEnqueuedTasks(t *testing.T) {
	writer := NewRemoteWriter(logger.NewLogger("test"), 2, 16, time.Second)
	writer.Start()

	var ran atomic.Int32
	done := make(chan struct{})
	writer.Enqueue("task one", func(ctx context.Context) {
		ran.Add(1)
	})
	writer.Enqueue("task two", func(ctx context.Context) {
		ran.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not run")
	}
	writer.Stop()
	assert.Equal(t, int32(2), ran.Load())
}

func TestRemoteWriter_StopDrainsQueue(t *testing.T) {
	writer := NewRemoteWriter(logger.NewLogger("test"), 1, 16, time.Second)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		writer.Enqueue("queued", func(ctx context.Context) {
			ran.Add(1)
		})
	}

	// Workers start after the queue is populated; Stop must still run
	// everything already accepted.
	writer.Start()
	writer.Stop()

	assert.Equal(t, int32(5), ran.Load())
}

func TestRemoteWriter_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	writer := NewRemoteWriter(logger.NewLogger("test"), 1, 2, time.Second)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		writer.Enqueue("overflow", func(ctx context.Context) {
			ran.Add(1)
		})
	}

	writer.Start()
	writer.Stop()

	// Only what fit in the queue ran; the rest were dropped, not blocked on.
	assert.Equal(t, int32(2), ran.Load())
}

func TestRemoteWriter_TaskContextCarriesDeadline(t *testing.T) {
	writer := NewRemoteWriter(logger.NewLogger("test"), 1, 4, 50*time.Millisecond)
	writer.Start()

	deadlineSet := make(chan bool, 1)
	writer.Enqueue("deadline check", func(ctx context.Context) {
		_, ok := ctx.Deadline()
		deadlineSet <- ok
	})

	select {
	case ok := <-deadlineSet:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
	writer.Stop()
}
