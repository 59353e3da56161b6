package quickadd

import (
	"strings"
	"unicode"
)

type token struct {
	raw      string
	norm     string
	consumed bool
}

const edgePunctuation = ",.;!?()[]\"'"

func tokenize(input string) []*token {
	fields := strings.Fields(input)
	tokens := make([]*token, 0, len(fields))
	for _, field := range fields {
		tokens = append(tokens, &token{raw: field, norm: normalize(field)})
	}
	return tokens
}

func normalize(s string) string {
	return strings.ToLower(strings.Trim(s, edgePunctuation))
}

// free reports whether tokens[i] exists and has not been claimed by a stage.
func free(tokens []*token, i int) bool {
	return i >= 0 && i < len(tokens) && !tokens[i].consumed
}

func consume(tokens []*token, from, width int) {
	for i := from; i < from+width && i < len(tokens); i++ {
		tokens[i].consumed = true
	}
}

// consumePreceding claims the phrase ending right before tokens[i] if it is one of
// the given phrases, trying them in order.
func consumePreceding(tokens []*token, i int, phrases ...string) bool {
	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		start := i - len(words)
		if start < 0 {
			continue
		}
		matched := true
		for j, word := range words {
			if !free(tokens, start+j) || tokens[start+j].norm != word {
				matched = false
				break
			}
		}
		if matched {
			consume(tokens, start, len(words))
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// splitLeadingDigits splits "30min" into "30" and "min".
func splitLeadingDigits(s string) (string, string) {
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
