package rephraser_test

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/aretw0/rephraser"
	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func key(tokens ...string) string {
	return strings.Join(tokens, " ")
}

// petModel holds the sentences "the cat sat" and "the dog ran".
func petModel(t *testing.T) *memory.Model {
	t.Helper()
	B, E := domain.Begin, domain.End
	model, err := memory.NewFromCounts(2, map[string]map[string]int64{
		key(B, B):         {"the": 2},
		key(B, "the"):     {"cat": 1, "dog": 1},
		key("the", "cat"): {"sat": 1},
		key("the", "dog"): {"ran": 1},
		key("cat", "sat"): {E: 1},
		key("dog", "ran"): {E: 1},
	})
	require.NoError(t, err)
	return model
}

func lines(buf *bytes.Buffer) []string {
	out := strings.Split(strings.TrimSpace(buf.String()), "\n")
	sort.Strings(out)
	return out
}

func TestGenerator_Run(t *testing.T) {
	gen, err := rephraser.New(petModel(t),
		rephraser.WithWords(3),
		rephraser.WithBatchDepth(1),
		rephraser.WithWorkers(2),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gen.Run(context.Background(), &buf))

	got := lines(&buf)
	assert.Contains(t, got, "The Cat Sat")
	assert.Contains(t, got, "The Dog Ran")
	for _, l := range got {
		assert.NotContains(t, l, domain.Begin)
		assert.NotContains(t, l, domain.End)
	}
}

func TestGenerator_SeedWords(t *testing.T) {
	gen, err := rephraser.New(petModel(t),
		rephraser.WithWords(2),
		rephraser.WithSeedWords([]string{"THE", "zebra"}),
		rephraser.WithWorkers(1),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gen.Run(context.Background(), &buf))

	assert.Equal(t, []string{"The Cat", "The Dog"}, lines(&buf))
}

func TestGenerator_Variants(t *testing.T) {
	B := domain.Begin
	model, err := memory.NewModel(2, map[string]domain.Transition{
		key(B, B):     {Successors: []string{"cat"}, Cumulative: []int64{1}},
		key(B, "cat"): {Successors: []string{"dog"}, Cumulative: []int64{1}},
	})
	require.NoError(t, err)

	gen, err := rephraser.New(model,
		rephraser.WithWords(2),
		rephraser.WithBatchDepth(2),
		rephraser.WithVariants(true),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gen.Run(context.Background(), &buf))

	want := []string{"Cat Dog", "CatDog", "cat dog", "catdog", "Cat dog", "Catdog", "cat Dog", "catDog"}
	sort.Strings(want)
	// The start context and "___BEGIN__ cat" both emit.
	got := lines(&buf)
	require.Len(t, got, 16)
	for _, w := range want {
		assert.Contains(t, got, w)
	}
}

func TestGenerator_Metrics(t *testing.T) {
	m := observability.NewMetrics()
	gen, err := rephraser.New(petModel(t),
		rephraser.WithWords(3),
		rephraser.WithBatchDepth(1),
		rephraser.WithWorkers(2),
		rephraser.WithMetrics(m),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gen.Run(context.Background(), &buf))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.WorkersExited))
	assert.Equal(t, float64(len(lines(&buf))), testutil.ToFloat64(m.LinesEmitted))
	assert.Positive(t, testutil.ToFloat64(m.ItemsEnqueued))
}

func TestGenerator_Cancelled(t *testing.T) {
	gen, err := rephraser.New(petModel(t), rephraser.WithWords(3), rephraser.WithBatchDepth(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = gen.Run(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInterrupted)
}

func TestGenerator_AbortedRunLeavesNoWorkers(t *testing.T) {
	defer goleak.VerifyNone(t)

	// ("the", "cat") is reachable from the start but missing from the model.
	B := domain.Begin
	broken, err := memory.NewFromCounts(2, map[string]map[string]int64{
		key(B, B):     {"the": 1},
		key(B, "the"): {"cat": 1},
	})
	require.NoError(t, err)

	t.Run("Model Error", func(t *testing.T) {
		gen, err := rephraser.New(broken, rephraser.WithWords(4), rephraser.WithBatchDepth(1), rephraser.WithWorkers(4))
		require.NoError(t, err)
		assert.ErrorIs(t, gen.Run(context.Background(), &bytes.Buffer{}), domain.ErrContextNotFound)
	})

	t.Run("Cancelled", func(t *testing.T) {
		gen, err := rephraser.New(petModel(t), rephraser.WithWords(3), rephraser.WithBatchDepth(1), rephraser.WithWorkers(4))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, gen.Run(ctx, &bytes.Buffer{}), domain.ErrInterrupted)
	})
}

func TestNew_UnusableSeedWords(t *testing.T) {
	_, err := rephraser.New(petModel(t), rephraser.WithSeedWords([]string{".", " ? ", ""}))
	assert.ErrorIs(t, err, rephraser.ErrNoSeedWords)

	_, err = rephraser.New(petModel(t), rephraser.WithSeedWords(nil))
	assert.NoError(t, err)
}

func TestNew_Validation(t *testing.T) {
	model := petModel(t)

	_, err := rephraser.New(nil)
	assert.Error(t, err)

	_, err = rephraser.New(model, rephraser.WithWords(0))
	assert.Error(t, err)

	_, err = rephraser.New(model, rephraser.WithBatchDepth(0))
	assert.Error(t, err)

	_, err = rephraser.New(model, rephraser.WithQueueSize(0))
	assert.Error(t, err)

	_, err = rephraser.New(model, rephraser.WithWorkers(-4))
	assert.NoError(t, err, "worker count is coerced, not rejected")
}

func TestDefaultWorkers(t *testing.T) {
	assert.GreaterOrEqual(t, rephraser.DefaultWorkers(), 1)
}
