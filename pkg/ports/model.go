package ports

import (
	"context"

	"github.com/aretw0/rephraser/pkg/domain"
)

// TransitionModel is the read-only, queryable n-gram model the engine walks.
// Implementations must be safe for concurrent use by many workers and must not
// block: lookups are expected to be served from memory.
type TransitionModel interface {
	// Lookup returns the transition entry for a context.
	// Returns domain.ErrContextNotFound if the model holds no entry for it.
	Lookup(c domain.Context) (domain.Transition, error)

	// Contexts returns every context the model holds, in a stable order.
	Contexts() ([]domain.Context, error)

	// StateSize is the number of tokens per context.
	StateSize() int
}

// ModelSource produces a TransitionModel from some backing store (file, Redis).
// Loading may block; the returned model must not.
type ModelSource interface {
	Load(ctx context.Context) (TransitionModel, error)
}
