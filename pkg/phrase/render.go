package phrase

import "strings"

// VariantCount is the number of lines Render produces in variant mode.
const VariantCount = 8

// Render produces the output lines for a finalized (title-cased) phrase.
// With variants disabled only the spaced title-case line is returned.
func Render(tokens []string, variants bool) []string {
	if len(tokens) == 0 {
		return nil
	}
	title := strings.Join(tokens, " ")
	if !variants {
		return []string{title}
	}

	first, rest := tokens[0], tokens[1:]
	lowerRest := make([]string, len(rest))
	for i, t := range rest {
		lowerRest[i] = strings.ToLower(t)
	}
	firstCap := append([]string{first}, lowerRest...)
	camel := append([]string{strings.ToLower(first)}, rest...)

	return []string{
		title,
		strings.Join(tokens, ""),
		strings.ToLower(title),
		strings.ToLower(strings.Join(tokens, "")),
		strings.Join(firstCap, " "),
		strings.Join(firstCap, ""),
		strings.Join(camel, " "),
		strings.Join(camel, ""),
	}
}

// RenderAll renders every phrase into one flat batch of lines.
func RenderAll(phrases [][]string, variants bool) []string {
	n := len(phrases)
	if variants {
		n *= VariantCount
	}
	lines := make([]string, 0, n)
	for _, p := range phrases {
		lines = append(lines, Render(p, variants)...)
	}
	return lines
}
