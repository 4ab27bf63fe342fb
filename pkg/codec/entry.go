// Package codec converts transition entries to and from the compiled array
// form used by model files and model stores:
//
//	[["successor", ...], [cumulative, ...]]
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/rephraser/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Entry wraps a domain.Transition with JSON and YAML codecs for the compiled form.
type Entry domain.Transition

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	succ := e.Successors
	if succ == nil {
		succ = []string{}
	}
	cum := e.Cumulative
	if cum == nil {
		cum = []int64{}
	}
	return json.Marshal([2]any{succ, cum})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedTransition, err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("%w: expected 2 arrays, got %d", domain.ErrMalformedTransition, len(parts))
	}
	var tr domain.Transition
	if err := json.Unmarshal(parts[0], &tr.Successors); err != nil {
		return fmt.Errorf("%w: successors: %v", domain.ErrMalformedTransition, err)
	}
	if err := json.Unmarshal(parts[1], &tr.Cumulative); err != nil {
		return fmt.Errorf("%w: weights: %v", domain.ErrMalformedTransition, err)
	}
	if err := tr.Validate(); err != nil {
		return err
	}
	*e = Entry(tr)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (e Entry) MarshalYAML() (any, error) {
	succ := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, s := range e.Successors {
		succ.Content = append(succ.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s})
	}
	cum := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range e.Cumulative {
		cum.Content = append(cum.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(c)})
	}
	return &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{succ, cum}}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
		return fmt.Errorf("%w: line %d: expected a pair of sequences", domain.ErrMalformedTransition, value.Line)
	}
	var tr domain.Transition
	if err := value.Content[0].Decode(&tr.Successors); err != nil {
		return fmt.Errorf("%w: line %d: successors: %v", domain.ErrMalformedTransition, value.Line, err)
	}
	if err := value.Content[1].Decode(&tr.Cumulative); err != nil {
		return fmt.Errorf("%w: line %d: weights: %v", domain.ErrMalformedTransition, value.Line, err)
	}
	if err := tr.Validate(); err != nil {
		return err
	}
	*e = Entry(tr)
	return nil
}

// Transition returns the wrapped domain value.
func (e Entry) Transition() domain.Transition {
	return domain.Transition(e)
}
