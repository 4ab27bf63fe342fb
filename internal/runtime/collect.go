package runtime

import (
	"fmt"

	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/phrase"
	"github.com/aretw0/rephraser/pkg/ports"
)

// Collector enumerates every completion of a work item regardless of weight.
type Collector struct {
	model ports.TransitionModel
}

// NewCollector creates a collector over model.
func NewCollector(model ports.TransitionModel) *Collector {
	return &Collector{model: model}
}

// Collect returns every sanitized phrase formed by appending exactly item.Depth
// tokens to item.Prefix. Results follow successor-list order. An empty result
// is valid.
func (c *Collector) Collect(item domain.WorkItem) ([][]string, error) {
	return c.collect(item.Context, item.Depth, item.Prefix)
}

func (c *Collector) collect(from domain.Context, depth int, prefix []string) ([][]string, error) {
	if depth < 1 {
		// The prefix is already a full phrase.
		if len(prefix) == 0 {
			return nil, nil
		}
		done, ok := phrase.SanitizeAll(prefix)
		if !ok {
			return nil, nil
		}
		return [][]string{done}, nil
	}

	tr, err := c.model.Lookup(from)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", from, err)
	}
	if len(tr.Successors) != len(tr.Cumulative) {
		return nil, fmt.Errorf("collect %s: %w", from, domain.ErrMalformedTransition)
	}

	if depth > 1 {
		var out [][]string
		for _, token := range tr.Successors {
			if token == domain.End {
				continue
			}
			more, err := c.collect(from.Next(token), depth-1, append(prefix[:len(prefix):len(prefix)], token))
			if err != nil {
				return nil, err
			}
			out = append(out, more...)
		}
		return out, nil
	}

	// Base case: the prefix is sanitized once for every final token.
	head, ok := phrase.SanitizeAll(prefix)
	if !ok {
		return nil, nil
	}
	var out [][]string
	for _, token := range tr.Successors {
		if token == domain.End || token == "" {
			continue
		}
		last := phrase.Sanitize(token)
		if last == "" {
			continue
		}
		candidate := make([]string, len(head), len(head)+1)
		copy(candidate, head)
		out = append(out, append(candidate, last))
	}
	return out, nil
}
