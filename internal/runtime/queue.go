package runtime

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/rephraser/pkg/domain"
)

// DefaultQueueSize is the number of work items that may wait for a worker.
const DefaultQueueSize = 100000

// ErrQueueFull is returned by TryPush when the queue is at capacity.
var ErrQueueFull = errors.New("work queue full")

// ErrQueueAborted is returned by Push once the queue has been aborted.
var ErrQueueAborted = errors.New("work queue aborted")

// Queue is the bounded FIFO shared by the scheduler and every worker.
// Push blocks while the queue is full; Pop blocks while it is empty.
// Abort releases every blocked caller and makes Pop report that no more work
// will be handed out.
type Queue struct {
	items chan domain.WorkItem
	hooks domain.LifecycleHooks

	done  chan struct{}
	abort sync.Once
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueHooks registers callbacks fired for every non-sentinel push.
func WithQueueHooks(hooks domain.LifecycleHooks) QueueOption {
	return func(q *Queue) {
		q.hooks = hooks
	}
}

// NewQueue creates a queue holding at most capacity items.
func NewQueue(capacity int, opts ...QueueOption) *Queue {
	if capacity < 1 {
		capacity = DefaultQueueSize
	}
	q := &Queue{
		items: make(chan domain.WorkItem, capacity),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push enqueues item, blocking while the queue is full.
// It returns ctx.Err() if ctx is done before space frees up and
// ErrQueueAborted once the queue is aborted.
func (q *Queue) Push(ctx context.Context, item domain.WorkItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if q.Aborted() {
		return ErrQueueAborted
	}
	select {
	case q.items <- item:
		q.pushed(item)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return ErrQueueAborted
	}
}

// TryPush enqueues item without blocking.
func (q *Queue) TryPush(item domain.WorkItem) error {
	select {
	case q.items <- item:
		q.pushed(item)
		return nil
	default:
		return ErrQueueFull
	}
}

// Pop dequeues the next item, blocking until one is available.
// It returns false once the queue is aborted, even if items remain.
func (q *Queue) Pop() (domain.WorkItem, bool) {
	select {
	case <-q.done:
		return domain.WorkItem{}, false
	default:
	}
	select {
	case item := <-q.items:
		return item, true
	case <-q.done:
		return domain.WorkItem{}, false
	}
}

// Abort stops handing out work. Queued items are left in place for
// diagnostics. Safe to call more than once.
func (q *Queue) Abort() {
	q.abort.Do(func() { close(q.done) })
}

// Aborted reports whether Abort has been called.
func (q *Queue) Aborted() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// TryPop dequeues the next item if one is immediately available.
func (q *Queue) TryPop() (domain.WorkItem, bool) {
	select {
	case item := <-q.items:
		return item, true
	default:
		return domain.WorkItem{}, false
	}
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.items)
}

func (q *Queue) pushed(item domain.WorkItem) {
	if item.IsSentinel() || q.hooks.OnEnqueue == nil {
		return
	}
	q.hooks.OnEnqueue(domain.NewItemEvent(domain.EventEnqueue, -1, item))
}
