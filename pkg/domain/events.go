package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventEnqueue    EventType = "enqueue"
	EventItemDone   EventType = "item_done"
	EventWorkerExit EventType = "worker_exit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ItemEvent describes a work item entering the queue or leaving a worker.
type ItemEvent struct {
	EventBase
	Worker  int           `json:"worker"`
	Depth   int           `json:"depth"`
	Phrases int           `json:"phrases,omitempty"`
	Lines   int           `json:"lines,omitempty"`
	Elapsed time.Duration `json:"elapsed,omitempty"`
	Err     error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run on the producing or working goroutine and must be cheap and thread-safe.
type LifecycleHooks struct {
	OnEnqueue    func(*ItemEvent)
	OnItemDone   func(*ItemEvent)
	OnWorkerExit func(*ItemEvent)
}

// NewItemEvent stamps an event of the given type.
func NewItemEvent(t EventType, worker int, item WorkItem) *ItemEvent {
	return &ItemEvent{
		EventBase: EventBase{Timestamp: time.Now(), Type: t},
		Worker:    worker,
		Depth:     item.Depth,
	}
}
