package runtime_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/stretchr/testify/require"
)

const (
	B = domain.Begin
	E = domain.End
)

func key(tokens ...string) string {
	return strings.Join(tokens, " ")
}

// storyModel is a tiny bigram-state model:
//
//	the cat sat. the dog ran. a dog ran.
func storyModel(t *testing.T) *memory.Model {
	t.Helper()
	m, err := memory.NewModel(2, map[string]domain.Transition{
		key(B, B):         {Successors: []string{"the", "a"}, Cumulative: []int64{5, 8}},
		key(B, "the"):     {Successors: []string{"cat", "dog"}, Cumulative: []int64{4, 6}},
		key(B, "a"):       {Successors: []string{"dog"}, Cumulative: []int64{3}},
		key("the", "cat"): {Successors: []string{"sat", E}, Cumulative: []int64{3, 4}},
		key("the", "dog"): {Successors: []string{"ran"}, Cumulative: []int64{2}},
		key("a", "dog"):   {Successors: []string{"ran", E}, Cumulative: []int64{1, 3}},
		key("cat", "sat"): {Successors: []string{E}, Cumulative: []int64{4}},
		key("dog", "ran"): {Successors: []string{E}, Cumulative: []int64{3}},
	})
	require.NoError(t, err)
	return m
}

// drain pops everything currently queued.
func drain(q interface {
	TryPop() (domain.WorkItem, bool)
}) []domain.WorkItem {
	var out []domain.WorkItem
	for {
		item, ok := q.TryPop()
		if !ok {
			return out
		}
		out = append(out, item)
	}
}

// captureEmitter records every emitted line.
type captureEmitter struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureEmitter) Emit(lines []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, lines...)
	return nil
}

func (c *captureEmitter) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

var background = context.Background()
