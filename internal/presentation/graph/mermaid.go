package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/rephraser/internal/runtime"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/ports"
)

// Options bounds the rendered tree.
type Options struct {
	// Depth is the number of tokens drawn below the root.
	Depth int
	// Fanout keeps only the heaviest successors of each context (0 keeps all).
	Fanout int
	// From is the root context; nil means the phrase-start context.
	From domain.Context
}

// GenerateMermaid produces a Mermaid flowchart of the most probable phrase
// prefixes. Shapes:
// - Root: ((Circle))
// - Token: [Rectangle]
// - Phrase end: ([Stadium])
// Edges carry the recovered successor weight.
func GenerateMermaid(model ports.TransitionModel, opts Options) (string, error) {
	root := opts.From
	if root == nil {
		root = domain.StartContext(model.StateSize())
	}

	w := &writer{model: model, opts: opts}
	w.sb.WriteString("graph TD\n")
	w.sb.WriteString(fmt.Sprintf("    n0((\"%s\"))\n", escape(rootLabel(root))))
	w.next = 1
	if err := w.walk("n0", root, opts.Depth); err != nil {
		return "", err
	}
	return w.sb.String(), nil
}

type writer struct {
	model ports.TransitionModel
	opts  Options
	sb    strings.Builder
	next  int
}

func (w *writer) id() string {
	id := fmt.Sprintf("n%d", w.next)
	w.next++
	return id
}

func (w *writer) walk(parent string, from domain.Context, depth int) error {
	if depth < 1 {
		return nil
	}
	tr, err := w.model.Lookup(from)
	if err != nil {
		return fmt.Errorf("graph %s: %w", from, err)
	}
	order, err := runtime.Rank(tr)
	if err != nil {
		return fmt.Errorf("graph %s: %w", from, err)
	}
	weights, _ := tr.Weights()
	if w.opts.Fanout > 0 && len(order) > w.opts.Fanout {
		order = order[:w.opts.Fanout]
	}

	for _, idx := range order {
		token := tr.Successors[idx]
		child := w.id()
		if token == domain.End {
			w.sb.WriteString(fmt.Sprintf("    %s([\"end\"])\n", child))
		} else {
			w.sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", child, escape(token)))
		}
		w.sb.WriteString(fmt.Sprintf("    %s -- %d --> %s\n", parent, weights[idx], child))

		if token == domain.End {
			continue
		}
		if err := w.walk(child, from.Next(token), depth-1); err != nil {
			return err
		}
	}
	return nil
}

func rootLabel(c domain.Context) string {
	if c.IsStart() {
		return "start"
	}
	return strings.Join(c.Prefix(), " ")
}

// escape keeps labels inside Mermaid double quotes.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
