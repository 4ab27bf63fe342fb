package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadSeedWords reads a seed list, one word per line. Blank lines are ignored
// and words are lowercased. A missing file is an error.
func LoadSeedWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed list: %w", err)
	}
	return words, nil
}
