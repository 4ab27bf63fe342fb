package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/rephraser/internal/runtime"
	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	t.Run("Heaviest First", func(t *testing.T) {
		order, err := runtime.Rank(domain.Transition{Successors: []string{"x", "y"}, Cumulative: []int64{3, 10}})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0}, order)
	})

	t.Run("Ties Keep List Order", func(t *testing.T) {
		order, err := runtime.Rank(domain.Transition{
			Successors: []string{"a", "b", "c", "d"},
			Cumulative: []int64{2, 4, 9, 11},
		})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 0, 1, 3}, order)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := runtime.Rank(domain.Transition{Successors: []string{"a"}})
		assert.ErrorIs(t, err, domain.ErrMalformedTransition)
	})
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, runtime.Handoff, runtime.StrategyFor(3, 3))
	assert.Equal(t, runtime.Handoff, runtime.StrategyFor(1, 3))
	assert.Equal(t, runtime.Sequential, runtime.StrategyFor(4, 3))
}

func TestTraverser(t *testing.T) {
	model := storyModel(t)

	t.Run("Handoff Pushes In Descending Weight Order", func(t *testing.T) {
		q := runtime.NewQueue(100)
		tr := runtime.NewTraverser(model, q, 2)

		require.NoError(t, tr.Traverse(background, domain.StartContext(2), 2, nil))

		items := drain(q)
		require.Len(t, items, 2)
		assert.Equal(t, domain.Context{B, "the"}, items[0].Context)
		assert.Equal(t, []string{"the"}, items[0].Prefix)
		assert.Equal(t, 1, items[0].Depth)
		assert.Equal(t, domain.Context{B, "a"}, items[1].Context)
	})

	t.Run("Sequential Front Stays Ordered", func(t *testing.T) {
		q := runtime.NewQueue(100)
		tr := runtime.NewTraverser(model, q, 1)

		require.NoError(t, tr.Traverse(background, domain.StartContext(2), 3, nil))

		var prefixes [][]string
		for _, item := range drain(q) {
			assert.Equal(t, 0, item.Depth)
			prefixes = append(prefixes, item.Prefix)
		}
		assert.Equal(t, [][]string{
			{"the", "cat", "sat"},
			{"the", "dog", "ran"},
			{"a", "dog", "ran"},
		}, prefixes)
	})

	t.Run("End Only Context Enqueues Nothing", func(t *testing.T) {
		q := runtime.NewQueue(10)
		tr := runtime.NewTraverser(model, q, 3)

		require.NoError(t, tr.Traverse(background, domain.Context{"cat", "sat"}, 2, []string{"cat", "sat"}))
		assert.Equal(t, 0, q.Len())
	})

	t.Run("Missing Context Is Fatal", func(t *testing.T) {
		broken, err := memory.NewModel(2, map[string]domain.Transition{
			key(B, B): {Successors: []string{"ghost"}, Cumulative: []int64{1}},
		})
		require.NoError(t, err)

		tr := runtime.NewTraverser(broken, runtime.NewQueue(10), 1)
		err = tr.Traverse(background, domain.StartContext(2), 3, nil)
		assert.ErrorIs(t, err, domain.ErrContextNotFound)
	})

	t.Run("Cancelled Context Stops Traversal", func(t *testing.T) {
		ctx, cancel := context.WithCancel(background)
		cancel()

		q := runtime.NewQueue(10)
		err := runtime.NewTraverser(model, q, 1).Traverse(ctx, domain.StartContext(2), 3, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, q.Len())
	})

	t.Run("Sibling Prefixes Do Not Alias", func(t *testing.T) {
		q := runtime.NewQueue(10)
		prefix := make([]string, 1, 8) // spare capacity invites aliasing bugs
		prefix[0] = "the"

		require.NoError(t, runtime.NewTraverser(model, q, 2).Traverse(background, domain.Context{B, "the"}, 2, prefix))

		items := drain(q)
		require.Len(t, items, 2)
		assert.Equal(t, []string{"the", "cat"}, items[0].Prefix)
		assert.Equal(t, []string{"the", "dog"}, items[1].Prefix)
	})
}
