package domain

import "fmt"

// Transition is the model entry for one context: the successor tokens and a
// parallel, non-decreasing array of cumulative weights.
type Transition struct {
	Successors []string
	Cumulative []int64
}

// Validate checks the structural invariants of the entry.
func (t Transition) Validate() error {
	if len(t.Successors) != len(t.Cumulative) {
		return fmt.Errorf("%w: %d successors, %d weights", ErrMalformedTransition, len(t.Successors), len(t.Cumulative))
	}
	for i := 1; i < len(t.Cumulative); i++ {
		if t.Cumulative[i] < t.Cumulative[i-1] {
			return fmt.Errorf("%w: cumulative weight decreases at index %d", ErrMalformedTransition, i)
		}
	}
	if len(t.Cumulative) > 0 && t.Cumulative[0] < 0 {
		return fmt.Errorf("%w: negative weight at index 0", ErrMalformedTransition)
	}
	return nil
}

// Weights recovers the per-edge weights from the cumulative array:
// w[0] = c[0], w[i] = c[i] - c[i-1].
func (t Transition) Weights() ([]int64, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	w := make([]int64, len(t.Cumulative))
	for i, c := range t.Cumulative {
		if i == 0 {
			w[i] = c
			continue
		}
		w[i] = c - t.Cumulative[i-1]
	}
	return w, nil
}
