package cli

import (
	"fmt"
	"strings"

	"github.com/aretw0/rephraser/internal/runtime"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/ports"
)

// ModelStats summarizes a transition model.
type ModelStats struct {
	StateSize     int
	Contexts      int
	StartFanOut   int
	EndContexts   int
	Transitions   int
	MaxFanOut     int
	TopStarts     []string
	MissingStarts bool
}

// Inspect walks every context of model. topN bounds the listed phrase starts.
func Inspect(model ports.TransitionModel, topN int) (ModelStats, error) {
	stats := ModelStats{StateSize: model.StateSize()}

	contexts, err := model.Contexts()
	if err != nil {
		return stats, err
	}
	stats.Contexts = len(contexts)

	for _, c := range contexts {
		if c.Contains(domain.End) {
			stats.EndContexts++
		}
		tr, err := model.Lookup(c)
		if err != nil {
			return stats, err
		}
		stats.Transitions += len(tr.Successors)
		stats.MaxFanOut = max(stats.MaxFanOut, len(tr.Successors))
	}

	start, err := model.Lookup(domain.StartContext(model.StateSize()))
	if err != nil {
		stats.MissingStarts = true
		return stats, nil
	}
	stats.StartFanOut = len(start.Successors)

	order, err := runtime.Rank(start)
	if err != nil {
		return stats, err
	}
	weights, _ := start.Weights()
	for _, i := range order[:min(topN, len(order))] {
		stats.TopStarts = append(stats.TopStarts, fmt.Sprintf("%s (%d)", start.Successors[i], weights[i]))
	}
	return stats, nil
}

// Markdown renders the stats as a small report.
func (s ModelStats) Markdown() string {
	var b strings.Builder
	b.WriteString("# Model\n\n")
	b.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| State size | %d |\n", s.StateSize)
	fmt.Fprintf(&b, "| Contexts | %d |\n", s.Contexts)
	fmt.Fprintf(&b, "| Transitions | %d |\n", s.Transitions)
	fmt.Fprintf(&b, "| Largest fan-out | %d |\n", s.MaxFanOut)
	fmt.Fprintf(&b, "| Phrase starts | %d |\n", s.StartFanOut)
	fmt.Fprintf(&b, "| Contexts holding end marker | %d |\n", s.EndContexts)

	if s.MissingStarts {
		b.WriteString("\n**Warning:** the model has no phrase-start context; only mid-phrase seeds can be generated.\n")
		return b.String()
	}
	if len(s.TopStarts) > 0 {
		b.WriteString("\n## Most frequent starts\n\n")
		for _, st := range s.TopStarts {
			fmt.Fprintf(&b, "- %s\n", st)
		}
	}
	return b.String()
}
