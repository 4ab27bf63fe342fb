package domain

import "errors"

// ErrContextNotFound is returned when the model holds no entry for a context.
var ErrContextNotFound = errors.New("context not found")

// ErrMalformedTransition is returned when a transition entry breaks its invariants
// (length mismatch between successors and weights, or a decreasing cumulative array).
var ErrMalformedTransition = errors.New("malformed transition")

// ErrInterrupted is returned when scheduling is stopped by an external interrupt.
var ErrInterrupted = errors.New("scheduling interrupted")
