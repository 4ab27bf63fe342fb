package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/rephraser/pkg/adapters/file"
	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/domain"
	contract "github.com/aretw0/rephraser/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() map[string]domain.Transition {
	return map[string]domain.Transition{
		domain.Begin + " " + domain.Begin: {Successors: []string{"the", "a"}, Cumulative: []int64{4, 6}},
		domain.Begin + " the":             {Successors: []string{"cat"}, Cumulative: []int64{4}},
		"the cat":                         {Successors: []string{domain.End, "sat"}, Cumulative: []int64{1, 4}},
	}
}

func TestFileSource_Contract(t *testing.T) {
	for _, name := range []string{"model.json", "model.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			src, err := memory.NewModel(2, fixture())
			require.NoError(t, err)
			require.NoError(t, file.Write(path, src))

			loaded, err := file.NewSource(path).Load(context.Background())
			require.NoError(t, err)

			contract.TransitionModelContractTest(t, loaded, fixture())
		})
	}
}

func TestLoad_CompiledJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compiled.json")
	raw := `{"model": {"a b": [["c", "d"], [3, 10]], "b c": [["___END__"], [1]]}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	model, err := file.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, model.StateSize(), "state size is inferred from keys when missing")

	tr, err := model.Lookup(domain.Context{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, tr.Successors)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		_, err := file.Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Malformed Entry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"state_size": 2, "model": {"a b": [["c"], [3, 4]]}}`), 0644))
		_, err := file.Load(path)
		assert.ErrorIs(t, err, domain.ErrMalformedTransition)
	})
}

func TestLoadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.dat")
	require.NoError(t, os.WriteFile(path, []byte("state_size: 2\nmodel:\n  a b: [[c], [1]]\n"), 0644))

	t.Run("Explicit YAML", func(t *testing.T) {
		model, err := file.LoadFormat(path, "yaml")
		require.NoError(t, err)
		assert.Equal(t, 1, model.Len())
	})

	t.Run("Extension Fallback Parses JSON", func(t *testing.T) {
		_, err := file.LoadFormat(path, "auto")
		assert.ErrorContains(t, err, "json")
	})

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := file.LoadFormat(path, "toml")
		assert.ErrorContains(t, err, "unknown model format")
	})
}
