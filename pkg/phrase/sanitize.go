package phrase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// punctuation is the exclusion set for the first and last character of a token.
const punctuation = ",.;:?'\""

func isPunct(r rune) bool {
	return strings.ContainsRune(punctuation, r)
}

// strip drops a single leading and a single trailing punctuation mark.
func strip(token string) string {
	if r, size := utf8.DecodeRuneInString(token); size > 0 && isPunct(r) {
		token = token[size:]
	}
	if token != "" {
		if r, size := utf8.DecodeLastRuneInString(token); isPunct(r) {
			token = token[:len(token)-size]
		}
	}
	return token
}

// Sanitize strips punctuation from both ends of token and uppercases its first
// character, leaving the rest of the case intact (acronyms survive).
// An empty result means the token is unusable.
func Sanitize(token string) string {
	token = strip(token)
	r, size := utf8.DecodeRuneInString(token)
	if size == 0 {
		return ""
	}
	if r == utf8.RuneError && size == 1 {
		// Invalid leading byte: emit the corpus bytes unchanged.
		return token
	}
	return string(unicode.ToUpper(r)) + token[size:]
}

// SanitizeAll sanitizes every token, reporting false if any token degenerates to empty.
func SanitizeAll(tokens []string) ([]string, bool) {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		s := Sanitize(t)
		if s == "" {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// SeedKey is the form used to match a model token against a lowercase seed list.
func SeedKey(token string) string {
	return strings.ToLower(strip(token))
}
