// Package corpus builds transition models from plain text.
//
// Every sentence is padded with state-size domain.Begin markers and closed by
// domain.End, so the model's start context is the all-Begin window.
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/domain"
)

// maxLine bounds a single corpus line.
const maxLine = 1 << 20

// Scanner accumulates successor counts from sentences.
// It is not safe for concurrent use.
type Scanner struct {
	stateSize int
	counts    map[string]map[string]int64
	sentences int
}

// NewScanner creates a Scanner producing contexts of stateSize tokens.
func NewScanner(stateSize int) *Scanner {
	return &Scanner{
		stateSize: stateSize,
		counts:    make(map[string]map[string]int64),
	}
}

// Sentences returns how many sentences were counted.
func (s *Scanner) Sentences() int {
	return s.sentences
}

// AddSentence counts every window of words, including the Begin-padded
// opening windows and the closing End transition.
func (s *Scanner) AddSentence(words []string) {
	if len(words) == 0 {
		return
	}
	items := make([]string, 0, s.stateSize+len(words)+1)
	for i := 0; i < s.stateSize; i++ {
		items = append(items, domain.Begin)
	}
	items = append(items, words...)
	items = append(items, domain.End)

	for i := 0; i <= len(words); i++ {
		key := strings.Join(items[i:i+s.stateSize], " ")
		next := items[i+s.stateSize]
		succ, ok := s.counts[key]
		if !ok {
			succ = make(map[string]int64)
			s.counts[key] = succ
		}
		succ[next]++
	}
	s.sentences++
}

// Read consumes r line by line. Lines are split into sentences at words ending
// in '.', '!' or '?' that are followed by a capitalized word.
func (s *Scanner) Read(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, sentence := range SplitSentences(sc.Text()) {
			s.AddSentence(sentence)
		}
	}
	return sc.Err()
}

// ReadPath reads a single file, or every regular file below a directory in
// lexical order.
func (s *Scanner) ReadPath(ctx context.Context, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := s.Read(ctx, f); err != nil {
			return fmt.Errorf("failed to read corpus %s: %w", p, err)
		}
		return nil
	})
}

// Model compiles the counts into an immutable model.
func (s *Scanner) Model() (*memory.Model, error) {
	if len(s.counts) == 0 {
		return nil, fmt.Errorf("corpus holds no sentences")
	}
	return memory.NewFromCounts(s.stateSize, s.counts)
}

// SplitSentences tokenizes a line on whitespace and cuts it into sentences.
// Reserved markers are dropped from the input.
func SplitSentences(line string) [][]string {
	var (
		out     [][]string
		current []string
	)
	words := strings.Fields(line)
	for i, w := range words {
		if w == domain.Begin || w == domain.End {
			continue
		}
		current = append(current, w)
		if endsSentence(w) && (i+1 == len(words) || startsUpper(words[i+1])) {
			out = append(out, current)
			current = nil
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

func endsSentence(w string) bool {
	r, _ := utf8.DecodeLastRuneInString(w)
	return r == '.' || r == '!' || r == '?'
}

func startsUpper(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(r)
}
