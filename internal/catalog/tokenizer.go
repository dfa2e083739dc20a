// internal/catalog/tokenizer.go
package catalog

import "regexp"

// tokenPattern matches a double-quoted group, a single-quoted group or a run
// of non-whitespace, leftmost alternative first.
var tokenPattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'|(\S+)`)

// Tokenize splits a command line into tokens. Quoted groups become a single
// token with the quotes removed.
func Tokenize(line string) []string {
	matches := tokenPattern.FindAllStringSubmatch(line, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		switch {
		case m[1] != "":
			tokens = append(tokens, m[1])
		case m[2] != "":
			tokens = append(tokens, m[2])
		default:
			tokens = append(tokens, m[3])
		}
	}
	return tokens
}
