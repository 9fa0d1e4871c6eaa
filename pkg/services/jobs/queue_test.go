package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForStatus(t *testing.T, q *Queue, id string, want Status) Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := q.Get(id)
		require.True(t, ok)
		if job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	job, _ := q.Get(id)
	t.Fatalf("job %s never reached %s, last status %s", id, want, job.Status)
	return Job{}
}

func TestQueue_RunsEnqueuedTask(t *testing.T) {
	q := NewQueue(1, 4, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var ran atomic.Bool
	id, err := q.Enqueue("test-task", func(context.Context) error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	job := waitForStatus(t, q, id, StatusSucceeded)
	assert.True(t, ran.Load())
	assert.Empty(t, job.Error)
	assert.False(t, job.EnqueuedAt.IsZero())
	assert.False(t, job.StartedAt.IsZero())
	assert.False(t, job.FinishedAt.IsZero())
}

func TestQueue_RecordsFailure(t *testing.T) {
	q := NewQueue(1, 4, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	id, err := q.Enqueue("failing-task", func(context.Context) error {
		return fmt.Errorf("boom")
	})
	require.NoError(t, err)

	job := waitForStatus(t, q, id, StatusFailed)
	assert.Equal(t, "boom", job.Error)
}

func TestQueue_UnknownJob(t *testing.T) {
	q := NewQueue(1, 4, zerolog.Nop())
	_, ok := q.Get("nope")
	assert.False(t, ok)
}

func TestQueue_FullQueueRejectsWithoutBlocking(t *testing.T) {
	// No workers started: the buffer fills and the next enqueue must
	// fail fast instead of blocking the caller.
	q := NewQueue(1, 1, zerolog.Nop())

	_, err := q.Enqueue("first", func(context.Context) error { return nil })
	require.NoError(t, err)

	id, err := q.Enqueue("second", func(context.Context) error { return nil })
	assert.Error(t, err)

	job, ok := q.Get(id)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, job.Status)
}

func TestQueue_CloseRejectsNewWork(t *testing.T) {
	q := NewQueue(1, 4, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	q.Close()

	_, err := q.Enqueue("late", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestQueue_CloseDrainsPendingWork(t *testing.T) {
	q := NewQueue(2, 8, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var done atomic.Int32
	var ids []string
	for i := 0; i < 5; i++ {
		id, err := q.Enqueue("task", func(context.Context) error {
			done.Add(1)
			return nil
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	q.Close()

	assert.Equal(t, int32(5), done.Load())
	for _, id := range ids {
		job, ok := q.Get(id)
		require.True(t, ok)
		assert.Equal(t, StatusSucceeded, job.Status)
	}
}

func TestQueue_CancellationFailsBufferedWork(t *testing.T) {
	q := NewQueue(1, 8, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)

	release := make(chan struct{})
	blockerID, err := q.Enqueue("blocker", func(context.Context) error {
		<-release
		return nil
	})
	require.NoError(t, err)
	waitForStatus(t, q, blockerID, StatusRunning)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := q.Enqueue("buffered", func(context.Context) error { return nil })
		require.NoError(t, err)
		ids = append(ids, id)
	}

	cancel()
	close(release)

	waitForStatus(t, q, blockerID, StatusSucceeded)
	for _, id := range ids {
		job := waitForStatus(t, q, id, StatusFailed)
		assert.Contains(t, job.Error, "queue stopped before the job started")
		assert.False(t, job.FinishedAt.IsZero())
	}

	_, err = q.Enqueue("late", func(context.Context) error { return nil })
	assert.Error(t, err)
	q.Close()
}
