package runtime

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/ports"
)

// Strategy selects what the traverser does with each successor branch.
type Strategy int

const (
	// Sequential recurses in-process, keeping the shallow front of the walk ordered.
	Sequential Strategy = iota
	// Handoff pushes whole subtrees to the queue as worker-owned batches.
	Handoff
)

func (s Strategy) String() string {
	if s == Handoff {
		return "handoff"
	}
	return "sequential"
}

// StrategyFor compares the remaining depth against the batch threshold.
func StrategyFor(depth, threshold int) Strategy {
	if depth <= threshold {
		return Handoff
	}
	return Sequential
}

// Rank returns successor indices ordered by descending recovered weight.
// Equal weights keep successor-list order.
func Rank(tr domain.Transition) ([]int, error) {
	weights, err := tr.Weights()
	if err != nil {
		return nil, err
	}
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})
	return order, nil
}

// Traverser walks the model in descending-weight order and hands subtrees at or
// below the batch threshold to the queue.
type Traverser struct {
	model     ports.TransitionModel
	queue     *Queue
	threshold int
}

// NewTraverser creates a traverser pushing onto queue.
func NewTraverser(model ports.TransitionModel, queue *Queue, threshold int) *Traverser {
	return &Traverser{model: model, queue: queue, threshold: threshold}
}

// Traverse explores every completion of from that adds depth tokens to prefix.
// A lookup failure is fatal: it means the model is inconsistent.
func (t *Traverser) Traverse(ctx context.Context, from domain.Context, depth int, prefix []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth < 1 {
		return nil
	}

	tr, err := t.model.Lookup(from)
	if err != nil {
		return fmt.Errorf("traverse %s: %w", from, err)
	}
	order, err := Rank(tr)
	if err != nil {
		return fmt.Errorf("traverse %s: %w", from, err)
	}

	strategy := StrategyFor(depth, t.threshold)
	for _, idx := range order {
		token := tr.Successors[idx]
		if token == domain.End {
			continue
		}
		next := from.Next(token)
		// Full slice expression so siblings never share a backing array.
		nextPrefix := append(prefix[:len(prefix):len(prefix)], token)

		switch strategy {
		case Handoff:
			if err := t.queue.Push(ctx, domain.NewWorkItem(next, depth-1, nextPrefix)); err != nil {
				return err
			}
		case Sequential:
			if err := t.Traverse(ctx, next, depth-1, nextPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}
