package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is the observable record of one background unit of work.
type Job struct {
	ID         string
	Name       string
	Status     Status
	Error      string
	EnqueuedAt time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

type Task func(ctx context.Context) error

type queued struct {
	id   string
	task Task
}

// Queue runs deferred work on a fixed pool of workers and keeps a status
// record per job, so callers can observe completion and failure instead
// of firing and forgetting.
type Queue struct {
	mu      sync.RWMutex
	jobs    map[string]*Job
	tasks   chan queued
	workers int
	closed  bool
	wg      sync.WaitGroup
	logger  zerolog.Logger
	now     func() time.Time
}

func NewQueue(workers, buffer int, logger zerolog.Logger) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Queue{
		jobs:    make(map[string]*Job),
		tasks:   make(chan queued, buffer),
		workers: workers,
		logger:  logger,
		now:     time.Now,
	}
}

// Start launches the worker goroutines. The context bounds every task:
// cancelling it stops workers once the in-flight tasks return.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		// Checked first so a cancelled worker never picks up more
		// buffered work over the shut-down signal.
		select {
		case <-ctx.Done():
			q.abandon(ctx.Err())
			return
		default:
		}

		select {
		case <-ctx.Done():
			q.abandon(ctx.Err())
			return
		case item, ok := <-q.tasks:
			if !ok {
				return
			}
			q.run(ctx, item)
		}
	}
}

func (q *Queue) run(ctx context.Context, item queued) {
	q.setStatus(item.id, func(j *Job) {
		j.Status = StatusRunning
		j.StartedAt = q.now()
	})

	err := item.task(ctx)

	q.setStatus(item.id, func(j *Job) {
		j.FinishedAt = q.now()
		if err != nil {
			j.Status = StatusFailed
			j.Error = err.Error()
		} else {
			j.Status = StatusSucceeded
		}
	})

	if err != nil {
		q.logger.Error().Err(err).Str("job_id", item.id).Msg("background job failed")
	} else {
		q.logger.Info().Str("job_id", item.id).Msg("background job finished")
	}
}

// Enqueue registers a task and returns its job id. It never blocks: a
// full queue is reported as an error so the caller can surface it.
func (q *Queue) Enqueue(name string, task Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return "", fmt.Errorf("queue is closed")
	}
	id := uuid.NewString()
	job := &Job{
		ID:         id,
		Name:       name,
		Status:     StatusPending,
		EnqueuedAt: q.now(),
	}
	q.jobs[id] = job

	// Non-blocking send under the lock, so Close can never race the
	// channel shut-down against an in-flight enqueue.
	select {
	case q.tasks <- queued{id: id, task: task}:
		return id, nil
	default:
		job.Status = StatusFailed
		job.Error = "queue is full"
		return id, fmt.Errorf("queue is full")
	}
}

// Get returns a copy of the job record.
func (q *Queue) Get(id string) (Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	j, ok := q.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// Close stops accepting work and waits for the workers to drain.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()

	q.wg.Wait()
}

// abandon stops intake and fails every job still buffered. Workers call
// it when their context is cancelled, so a stopped queue never reports
// an undrained job as pending. Holding the lock while draining keeps a
// concurrent Enqueue from slipping a task past the drain.
func (q *Queue) abandon(cause error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	for {
		select {
		case item, ok := <-q.tasks:
			if !ok {
				return
			}
			if j, present := q.jobs[item.id]; present {
				j.Status = StatusFailed
				j.Error = fmt.Sprintf("queue stopped before the job started: %v", cause)
				j.FinishedAt = q.now()
				q.logger.Warn().Str("job_id", item.id).Msg("background job abandoned")
			}
		default:
			return
		}
	}
}

func (q *Queue) setStatus(id string, update func(*Job)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if j, ok := q.jobs[id]; ok {
		update(j)
	}
}
