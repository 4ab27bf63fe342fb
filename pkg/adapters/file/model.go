package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/codec"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk layout of a compiled model.
type Document struct {
	StateSize int                    `json:"state_size" yaml:"state_size"`
	Model     map[string]codec.Entry `json:"model" yaml:"model"`
}

// Source implements ports.ModelSource by reading a compiled model file.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON,
// unless Format names the parser ("json" or "yaml").
type Source struct {
	Path   string
	Format string
}

// NewSource creates a Source for the given path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// Load reads and validates the model file.
func (s *Source) Load(ctx context.Context) (ports.TransitionModel, error) {
	return LoadFormat(s.Path, s.Format)
}

// Load reads a compiled model file into memory, choosing the parser by extension.
func Load(path string) (*memory.Model, error) {
	return LoadFormat(path, "")
}

// LoadFormat reads a compiled model file with an explicit parser.
// An empty or "auto" format falls back to the extension.
func LoadFormat(path, format string) (*memory.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	useYAML := isYAML(path)
	switch format {
	case "", "auto":
	case "yaml":
		useYAML = true
	case "json":
		useYAML = false
	default:
		return nil, fmt.Errorf("unknown model format %q", format)
	}

	var doc Document
	if useYAML {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse model yaml: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse model json: %w", err)
		}
	}

	if doc.StateSize == 0 {
		doc.StateSize = inferStateSize(doc.Model)
	}

	entries := make(map[string]domain.Transition, len(doc.Model))
	for k, v := range doc.Model {
		entries[k] = v.Transition()
	}

	model, err := memory.NewModel(doc.StateSize, entries)
	if err != nil {
		return nil, fmt.Errorf("invalid model %s: %w", path, err)
	}
	return model, nil
}

// Write persists a memory model in the format implied by the path extension.
func Write(path string, model *memory.Model) error {
	doc := Document{
		StateSize: model.StateSize(),
		Model:     make(map[string]codec.Entry, model.Len()),
	}
	for k, v := range model.Entries() {
		doc.Model[k] = codec.Entry(v)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to ensure model directory: %w", err)
		}
	}

	// Write to a sibling temp file, then rename over the target.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace model file: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// inferStateSize takes the token count of any key. Files exported without a
// state_size header still carry it implicitly in every key.
func inferStateSize(m map[string]codec.Entry) int {
	for k := range m {
		return len(strings.Split(k, " "))
	}
	return 1
}
