package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/ports"
)

// TransitionModelContractTest is a reusable test suite that verifies if an adapter complies with ports.TransitionModel.
// setupData maps space-joined context keys to the entries the model was built from.
func TransitionModelContractTest(t *testing.T, model ports.TransitionModel, setupData map[string]domain.Transition) {
	t.Helper()

	// 1. Test Lookup (Success)
	t.Run("Lookup_Success", func(t *testing.T) {
		for key, expected := range setupData {
			got, err := model.Lookup(domain.ParseContext(key, model.StateSize()))
			if err != nil {
				t.Fatalf("unexpected error looking up %q: %v", key, err)
			}
			if len(got.Successors) != len(expected.Successors) {
				t.Fatalf("successor count mismatch for %q. got %d, want %d", key, len(got.Successors), len(expected.Successors))
			}
			for i := range expected.Successors {
				if got.Successors[i] != expected.Successors[i] || got.Cumulative[i] != expected.Cumulative[i] {
					t.Errorf("entry mismatch for %q at %d. got (%q, %d), want (%q, %d)", key, i,
						got.Successors[i], got.Cumulative[i], expected.Successors[i], expected.Cumulative[i])
				}
			}
		}
	})

	// 2. Test Lookup (NotFound)
	t.Run("Lookup_NotFound", func(t *testing.T) {
		missing := make(domain.Context, model.StateSize())
		for i := range missing {
			missing[i] = "non-existent-token"
		}
		_, err := model.Lookup(missing)
		if !errors.Is(err, domain.ErrContextNotFound) {
			t.Errorf("expected ErrContextNotFound, got %v", err)
		}
	})

	// 3. Test Contexts
	t.Run("Contexts", func(t *testing.T) {
		contexts, err := model.Contexts()
		if err != nil {
			t.Fatalf("unexpected error listing contexts: %v", err)
		}

		if len(contexts) != len(setupData) {
			t.Errorf("expected %d contexts, got %d", len(setupData), len(contexts))
		}

		lookup := make(map[string]bool)
		for _, c := range contexts {
			if len(c) != model.StateSize() {
				t.Errorf("context %s has %d tokens, want %d", c, len(c), model.StateSize())
			}
			lookup[c.Key()] = true
		}

		for key := range setupData {
			if !lookup[key] {
				t.Errorf("context %q missing from list", key)
			}
		}
	})

	// 4. Test Stable Order
	t.Run("Contexts_StableOrder", func(t *testing.T) {
		first, _ := model.Contexts()
		second, _ := model.Contexts()
		for i := range first {
			if first[i].Key() != second[i].Key() {
				t.Fatalf("context order changed between calls at %d: %s vs %s", i, first[i], second[i])
			}
		}
	})
}
