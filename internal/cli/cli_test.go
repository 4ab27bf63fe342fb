package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/rephraser"
	"github.com/aretw0/rephraser/internal/config"
	"github.com/aretw0/rephraser/internal/logging"
	"github.com/aretw0/rephraser/pkg/adapters/file"
	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeModel stores "the cat sat" / "the dog ran" as a compiled JSON model.
func writeModel(t *testing.T) string {
	t.Helper()
	B, E := domain.Begin, domain.End
	model, err := memory.NewFromCounts(2, map[string]map[string]int64{
		B + " " + B: {"the": 2},
		B + " the":  {"cat": 1, "dog": 1},
		"the cat":   {"sat": 1},
		"the dog":   {"ran": 1},
		"cat sat":   {E: 1},
		"dog ran":   {E: 1},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, file.Write(path, model))
	return path
}

func loadConfig(t *testing.T, overrides map[string]any) config.Config {
	t.Helper()
	cfg, err := config.Load("", overrides)
	require.NoError(t, err)
	return cfg
}

func TestLoadSeedWords(t *testing.T) {
	t.Run("Skips Blank Lines And Lowercases", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seeds.txt")
		require.NoError(t, os.WriteFile(path, []byte("Correct\n\n  horse \n\nBATTERY\n"), 0644))

		words, err := LoadSeedWords(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"correct", "horse", "battery"}, words)
	})

	t.Run("Missing File Is Fatal", func(t *testing.T) {
		_, err := LoadSeedWords(filepath.Join(t.TempDir(), "none.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestExecute_FileModel(t *testing.T) {
	cfg := loadConfig(t, map[string]any{
		"model":       writeModel(t),
		"words":       3,
		"batch_depth": 1,
		"workers":     2,
	})

	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), RunOptions{Config: cfg, Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "The Cat Sat\n")
	assert.Contains(t, stdout.String(), "The Dog Ran\n")
	assert.NotContains(t, stdout.String(), "level=", "logs must stay off stdout")
	assert.Contains(t, stderr.String(), "Scheduling complete")
	assert.Contains(t, stderr.String(), "Generation finished")
}

func TestExecute_SeedList(t *testing.T) {
	seeds := filepath.Join(t.TempDir(), "seeds.txt")
	require.NoError(t, os.WriteFile(seeds, []byte("the\n"), 0644))

	cfg := loadConfig(t, map[string]any{
		"model":     writeModel(t),
		"words":     2,
		"seed_list": seeds,
		"variants":  true,
	})

	var stdout bytes.Buffer
	require.NoError(t, Execute(context.Background(), RunOptions{Config: cfg, Stdout: &stdout, Stderr: io.Discard}))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 16, "two phrases, eight renderings each")
	assert.Contains(t, lines, "theCat")
	assert.Contains(t, lines, "The dog")
}

func TestExecute_Errors(t *testing.T) {
	t.Run("Missing Seed List", func(t *testing.T) {
		cfg := loadConfig(t, map[string]any{"model": writeModel(t), "seed_list": "/nonexistent/seeds"})
		err := Execute(context.Background(), RunOptions{Config: cfg, Stdout: io.Discard, Stderr: io.Discard})
		assert.ErrorContains(t, err, "seed list")
	})

	t.Run("Seed List Without Usable Words", func(t *testing.T) {
		seeds := filepath.Join(t.TempDir(), "seeds.txt")
		require.NoError(t, os.WriteFile(seeds, []byte(".\n?\n\"\n"), 0644))

		cfg := loadConfig(t, map[string]any{"model": writeModel(t), "seed_list": seeds})
		var stdout bytes.Buffer
		err := Execute(context.Background(), RunOptions{Config: cfg, Stdout: &stdout, Stderr: io.Discard})
		assert.ErrorIs(t, err, rephraser.ErrNoSeedWords)
		assert.Empty(t, stdout.String())
	})

	t.Run("State Size Mismatch", func(t *testing.T) {
		cfg := loadConfig(t, map[string]any{"model": writeModel(t), "state_size": 3})
		err := Execute(context.Background(), RunOptions{Config: cfg, Stdout: io.Discard, Stderr: io.Discard})
		assert.ErrorContains(t, err, "state size")
	})

	t.Run("Interrupted", func(t *testing.T) {
		cfg := loadConfig(t, map[string]any{"model": writeModel(t), "words": 3, "batch_depth": 1})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var stderr bytes.Buffer
		err := Execute(ctx, RunOptions{Config: cfg, Stdout: io.Discard, Stderr: &stderr})
		assert.True(t, IsInterrupted(err))
		assert.Contains(t, stderr.String(), "Interrupt detected")
	})
}

func TestImportAndRunFromRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	url := "redis://" + mr.Addr()
	n, err := Import(context.Background(), ImportOptions{
		Path:     writeModel(t),
		RedisURL: url,
		Prefix:   "test:model:",
	}, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	cfg := loadConfig(t, map[string]any{
		"format":       config.FormatRedis,
		"redis_url":    url,
		"redis_prefix": "test:model:",
		"words":        3,
		"batch_depth":  1,
	})

	var stdout bytes.Buffer
	require.NoError(t, Execute(context.Background(), RunOptions{Config: cfg, Stdout: &stdout, Stderr: io.Discard}))
	assert.Contains(t, stdout.String(), "The Cat Sat\n")
}

func TestInspect(t *testing.T) {
	model, err := file.Load(writeModel(t))
	require.NoError(t, err)

	stats, err := Inspect(model, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.StateSize)
	assert.Equal(t, 6, stats.Contexts)
	assert.Equal(t, 1, stats.StartFanOut)
	assert.Equal(t, 0, stats.EndContexts)
	assert.Equal(t, 7, stats.Transitions)
	assert.Equal(t, 2, stats.MaxFanOut)
	assert.Equal(t, []string{"the (2)"}, stats.TopStarts)

	report := stats.Markdown()
	assert.Contains(t, report, "| Contexts | 6 |")
	assert.Contains(t, report, "- the (2)")
}

func TestInspect_NoStartContext(t *testing.T) {
	model, err := memory.NewModel(2, map[string]domain.Transition{
		"a b": {Successors: []string{"c"}, Cumulative: []int64{1}},
	})
	require.NoError(t, err)

	stats, err := Inspect(model, 5)
	require.NoError(t, err)
	assert.True(t, stats.MissingStarts)
	assert.Contains(t, stats.Markdown(), "no phrase-start context")
}

func TestMetricsHandler(t *testing.T) {
	m := observability.NewMetrics()
	m.ItemsEnqueued.Add(3)
	handler := NewMetricsHandler(m)

	t.Run("Metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "rephraser_work_items_enqueued_total 3")
	})

	t.Run("Health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok\n", rec.Body.String())
	})
}

func TestMetricsServer_Lifecycle(t *testing.T) {
	srv, err := StartMetricsServer("127.0.0.1:0", observability.NewMetrics(), logging.NewNop())
	require.NoError(t, err)

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.NoError(t, srv.Stop())
}

func TestCreateLogger(t *testing.T) {
	var buf bytes.Buffer
	createLogger(&buf, false, "text").Debug("hidden")
	createLogger(&buf, false, "text").Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	createLogger(&buf, true, "json").Debug("traced")
	assert.Contains(t, buf.String(), `"msg":"traced"`)
}
