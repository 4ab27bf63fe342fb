// Package runtime implements the traversal-and-distribution engine: the
// weighted traverser, the exhaustive collector, the bounded work queue, the
// worker pool and the scheduler that drives them.
package runtime
