package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/rephraser/pkg/domain"
)

// Model implements ports.TransitionModel using an in-memory map keyed by the
// space-joined context. It is immutable after construction and safe for
// concurrent readers.
type Model struct {
	stateSize int
	entries   map[string]domain.Transition
	keys      []string
}

// NewModel creates a Model from raw entries keyed by space-joined contexts.
// Every key must hold exactly stateSize tokens and every entry must be well formed.
func NewModel(stateSize int, data map[string]domain.Transition) (*Model, error) {
	if stateSize < 1 {
		return nil, fmt.Errorf("invalid state size %d", stateSize)
	}
	entries := make(map[string]domain.Transition, len(data))
	keys := make([]string, 0, len(data))
	for k, v := range data {
		if n := len(strings.Split(k, " ")); n != stateSize {
			return nil, fmt.Errorf("context %q has %d tokens, want %d", k, n, stateSize)
		}
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("context %q: %w", k, err)
		}
		entries[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return &Model{stateSize: stateSize, entries: entries, keys: keys}, nil
}

// NewFromCounts builds a Model from successor counts, the shape a corpus
// scanner produces. Successors are ordered by token so the cumulative array is
// reproducible.
func NewFromCounts(stateSize int, counts map[string]map[string]int64) (*Model, error) {
	data := make(map[string]domain.Transition, len(counts))
	for key, next := range counts {
		tokens := make([]string, 0, len(next))
		for tok := range next {
			tokens = append(tokens, tok)
		}
		sort.Strings(tokens)

		tr := domain.Transition{
			Successors: tokens,
			Cumulative: make([]int64, len(tokens)),
		}
		var total int64
		for i, tok := range tokens {
			total += next[tok]
			tr.Cumulative[i] = total
		}
		data[key] = tr
	}
	return NewModel(stateSize, data)
}

// Lookup retrieves the transition entry for a context.
func (m *Model) Lookup(c domain.Context) (domain.Transition, error) {
	tr, ok := m.entries[c.Key()]
	if !ok {
		return domain.Transition{}, fmt.Errorf("%w: %s", domain.ErrContextNotFound, c)
	}
	return tr, nil
}

// Contexts returns all contexts in sorted key order.
func (m *Model) Contexts() ([]domain.Context, error) {
	out := make([]domain.Context, len(m.keys))
	for i, k := range m.keys {
		out[i] = domain.ParseContext(k, m.stateSize)
	}
	return out, nil
}

// StateSize returns the number of tokens per context.
func (m *Model) StateSize() int {
	return m.stateSize
}

// Len returns the number of contexts held.
func (m *Model) Len() int {
	return len(m.keys)
}

// Entries returns a copy of the raw entries, keyed by space-joined context.
// Used by exporters.
func (m *Model) Entries() map[string]domain.Transition {
	out := make(map[string]domain.Transition, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}
