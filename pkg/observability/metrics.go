package observability

import (
	"sync"

	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rephraser"

// Metrics holds the engine collectors.
type Metrics struct {
	Registry *prometheus.Registry

	ItemsEnqueued  prometheus.Counter
	ItemsProcessed *prometheus.CounterVec
	PhrasesEmitted prometheus.Counter
	LinesEmitted   prometheus.Counter
	WorkersExited  prometheus.Counter
	ItemDuration   prometheus.Histogram
	ItemDepth      prometheus.Histogram

	mu       sync.RWMutex
	queueLen func() int
	queueCap func() int
}

// NewMetrics creates and registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ItemsEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_items_enqueued_total",
			Help:      "Total number of work items pushed onto the queue",
		}),
		ItemsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_items_processed_total",
			Help:      "Total number of work items finished by workers",
		}, []string{"result"}),
		PhrasesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phrases_emitted_total",
			Help:      "Total number of finalized phrases",
		}),
		LinesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_emitted_total",
			Help:      "Total number of output lines, variants included",
		}),
		WorkersExited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workers_terminated_total",
			Help:      "Total number of workers that consumed a sentinel",
		}),
		ItemDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "work_item_duration_seconds",
			Help:      "Time spent collecting and emitting one work item",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		ItemDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "work_item_depth",
			Help:      "Remaining depth of enqueued work items",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
	}
	m.Registry.MustRegister(
		m.ItemsEnqueued,
		m.ItemsProcessed,
		m.PhrasesEmitted,
		m.LinesEmitted,
		m.WorkersExited,
		m.ItemDuration,
		m.ItemDepth,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Number of work items waiting for a worker",
		}, func() float64 { return m.readQueue(false) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_capacity",
			Help:      "Maximum number of queued work items",
		}, func() float64 { return m.readQueue(true) }),
	)
	return m
}

// ObserveQueue points the queue gauges at a live queue.
// A later call replaces the previous source.
func (m *Metrics) ObserveQueue(length, capacity func() int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueLen, m.queueCap = length, capacity
}

func (m *Metrics) readQueue(capacity bool) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f := m.queueLen
	if capacity {
		f = m.queueCap
	}
	if f == nil {
		return 0
	}
	return float64(f())
}

// Hooks returns lifecycle hooks recording into the collectors.
// If next is non-nil its callbacks run after the metrics are updated.
func (m *Metrics) Hooks(next *domain.LifecycleHooks) domain.LifecycleHooks {
	chain := domain.LifecycleHooks{}
	if next != nil {
		chain = *next
	}
	return domain.LifecycleHooks{
		OnEnqueue: func(e *domain.ItemEvent) {
			m.ItemsEnqueued.Inc()
			m.ItemDepth.Observe(float64(e.Depth))
			if chain.OnEnqueue != nil {
				chain.OnEnqueue(e)
			}
		},
		OnItemDone: func(e *domain.ItemEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.ItemsProcessed.WithLabelValues(result).Inc()
			m.PhrasesEmitted.Add(float64(e.Phrases))
			m.LinesEmitted.Add(float64(e.Lines))
			m.ItemDuration.Observe(e.Elapsed.Seconds())
			if chain.OnItemDone != nil {
				chain.OnItemDone(e)
			}
		},
		OnWorkerExit: func(e *domain.ItemEvent) {
			m.WorkersExited.Inc()
			if chain.OnWorkerExit != nil {
				chain.OnWorkerExit(e)
			}
		},
	}
}
