package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/phrase"
	"github.com/aretw0/rephraser/pkg/ports"
)

// Scheduler seeds the traversal, either from the phrase-start context plus
// every other context, or from the contexts matching a seed word list.
type Scheduler struct {
	model     ports.TransitionModel
	queue     *Queue
	traverser *Traverser
	words     int
	threshold int
	seeds     []string
	logger    *slog.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSeedWords restricts and orders phrase starts by a lowercase word list.
func WithSeedWords(words []string) SchedulerOption {
	return func(s *Scheduler) {
		s.seeds = words
	}
}

// WithSchedulerLogger configures the structured logger.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a scheduler producing phrases of words tokens and
// handing off subtrees of at most threshold tokens.
func NewScheduler(model ports.TransitionModel, queue *Queue, words, threshold int, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		model:     model,
		queue:     queue,
		traverser: NewTraverser(model, queue, threshold),
		words:     words,
		threshold: threshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule produces every work item. It returns ctx.Err() when interrupted and
// any model inconsistency found while traversing.
func (s *Scheduler) Schedule(ctx context.Context) error {
	if len(s.seeds) > 0 {
		return s.seeded(ctx)
	}
	return s.unconstrained(ctx)
}

func (s *Scheduler) unconstrained(ctx context.Context) error {
	start := domain.StartContext(s.model.StateSize())
	s.logger.Debug("Traversing from phrase start", "words", s.words, "batch_depth", s.threshold)
	if err := s.traverser.Traverse(ctx, start, s.words, nil); err != nil {
		return err
	}

	contexts, err := s.model.Contexts()
	if err != nil {
		return fmt.Errorf("failed to list contexts: %w", err)
	}
	for _, c := range contexts {
		if c.IsStart() || c.Contains(domain.End) {
			continue
		}
		if err := s.seed(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) seeded(ctx context.Context) error {
	buckets, err := s.Buckets()
	if err != nil {
		return err
	}
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		s.logger.Debug("Seeding word", "word", s.seeds[i], "contexts", len(bucket))
		for _, c := range bucket {
			if err := s.seed(ctx, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Buckets groups model contexts by the seed word their first committed token
// matches, one bucket per seed list entry, each in discovery order. Contexts
// matching no entry are dropped.
func (s *Scheduler) Buckets() ([][]domain.Context, error) {
	index := make(map[string]int, len(s.seeds))
	for i, w := range s.seeds {
		if _, dup := index[w]; !dup {
			index[w] = i
		}
	}

	contexts, err := s.model.Contexts()
	if err != nil {
		return nil, fmt.Errorf("failed to list contexts: %w", err)
	}

	buckets := make([][]domain.Context, len(s.seeds))
	for _, c := range contexts {
		if c.IsStart() || c.Contains(domain.End) {
			continue
		}
		prefix := c.Prefix()
		if len(prefix) == 0 {
			continue
		}
		if i, ok := index[phrase.SeedKey(prefix[0])]; ok {
			buckets[i] = append(buckets[i], c)
		}
	}
	return buckets, nil
}

// seed schedules a single context as a phrase start. Its committed tokens count
// against the requested length.
func (s *Scheduler) seed(ctx context.Context, c domain.Context) error {
	prefix := c.Prefix()
	depth := s.words - len(prefix)
	if depth < 1 {
		return nil
	}
	if depth <= s.threshold {
		return s.queue.Push(ctx, domain.NewWorkItem(c, depth, prefix))
	}
	return s.traverser.Traverse(ctx, c, depth, prefix)
}
