package domain

import "fmt"

// WorkItem is one unit of parallel work: every completion of Context that
// adds exactly Depth more tokens to Prefix.
type WorkItem struct {
	Context Context
	Depth   int
	// Prefix holds the committed output tokens, never sentinel tokens.
	Prefix []string

	sentinel bool
}

// NewWorkItem builds a work item. The prefix is copied so the caller may keep
// appending to its own slice.
func NewWorkItem(c Context, depth int, prefix []string) WorkItem {
	p := make([]string, len(prefix))
	copy(p, prefix)
	return WorkItem{Context: c, Depth: depth, Prefix: p}
}

// Sentinel returns the work item that tells a worker to terminate.
func Sentinel() WorkItem {
	return WorkItem{sentinel: true}
}

// IsSentinel reports whether the item is a termination marker.
func (w WorkItem) IsSentinel() bool {
	return w.sentinel
}

func (w WorkItem) String() string {
	if w.sentinel {
		return "<done>"
	}
	return fmt.Sprintf("%s depth=%d prefix=%q", w.Context, w.Depth, w.Prefix)
}
