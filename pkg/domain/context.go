package domain

import "strings"

// Context is the fixed-size window of the last tokens used as a lookup key
// into the transition model.
type Context []string

// StartContext returns the phrase-start context of the given size.
func StartContext(size int) Context {
	c := make(Context, size)
	for i := range c {
		c[i] = Begin
	}
	return c
}

// ParseContext splits a space-joined key back into a context of at most size tokens.
// The last token keeps any remaining spaces, mirroring how keys are joined.
func ParseContext(key string, size int) Context {
	if size < 1 {
		size = 1
	}
	return Context(strings.SplitN(key, " ", size))
}

// Key returns the space-joined form of the context, used by model stores.
func (c Context) Key() string {
	return strings.Join(c, " ")
}

// Next drops the oldest token and appends token, returning a new context.
func (c Context) Next(token string) Context {
	next := make(Context, 0, len(c))
	if len(c) > 0 {
		next = append(next, c[1:]...)
	}
	return append(next, token)
}

// Contains reports whether token occurs anywhere in the context.
func (c Context) Contains(token string) bool {
	for _, t := range c {
		if t == token {
			return true
		}
	}
	return false
}

// IsStart reports whether every position holds the Begin token.
func (c Context) IsStart() bool {
	if len(c) == 0 {
		return false
	}
	for _, t := range c {
		if t != Begin {
			return false
		}
	}
	return true
}

// Prefix returns the tokens already committed by the context: everything after
// the leading Begin markers.
func (c Context) Prefix() []string {
	i := 0
	for i < len(c) && c[i] == Begin {
		i++
	}
	out := make([]string, len(c)-i)
	copy(out, c[i:])
	return out
}

// String implements fmt.Stringer.
func (c Context) String() string {
	return "(" + strings.Join(c, ", ") + ")"
}
