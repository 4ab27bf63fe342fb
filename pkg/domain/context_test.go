package domain_test

import (
	"testing"

	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	t.Run("Next Shifts Window", func(t *testing.T) {
		c := domain.Context{"a", "b"}
		next := c.Next("c")
		assert.Equal(t, domain.Context{"b", "c"}, next)
		assert.Equal(t, domain.Context{"a", "b"}, c, "original context must not change")
	})

	t.Run("Key Round Trip", func(t *testing.T) {
		c := domain.Context{domain.Begin, "hello"}
		assert.Equal(t, c, domain.ParseContext(c.Key(), 2))
	})

	t.Run("Start Context", func(t *testing.T) {
		assert.True(t, domain.StartContext(3).IsStart())
		assert.False(t, domain.Context{domain.Begin, "x"}.IsStart())
		assert.False(t, domain.Context{}.IsStart())
	})

	t.Run("Prefix Strips Leading Begin Markers", func(t *testing.T) {
		assert.Equal(t, []string{"x"}, domain.Context{domain.Begin, "x"}.Prefix())
		assert.Equal(t, []string{"x"}, domain.Context{domain.Begin, domain.Begin, "x"}.Prefix())
		assert.Equal(t, []string{"a", "b"}, domain.Context{"a", "b"}.Prefix())
		assert.Empty(t, domain.StartContext(2).Prefix())
	})

	t.Run("Contains", func(t *testing.T) {
		assert.True(t, domain.Context{"a", domain.End}.Contains(domain.End))
		assert.False(t, domain.Context{"a", "b"}.Contains(domain.End))
	})
}

func TestWorkItem(t *testing.T) {
	prefix := []string{"a"}
	item := domain.NewWorkItem(domain.Context{"a", "b"}, 2, prefix)
	prefix[0] = "mutated"

	assert.Equal(t, []string{"a"}, item.Prefix)
	assert.False(t, item.IsSentinel())
	assert.True(t, domain.Sentinel().IsSentinel())
}
