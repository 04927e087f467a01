// Package sentence splits text into sentences for per-sentence analysis and
// claim extraction. It has no dependencies on the rest of the service.
package sentence

import (
	"strings"
	"unicode"
)

// isTerminator reports whether r ends a sentence.
func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Split breaks text into sentences on sentence-ending punctuation followed by
// whitespace. Each sentence is trimmed; empty sentences are dropped. The
// terminator stays attached to its sentence.
func Split(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		// Consume a run of terminators ("..." or "?!") as one boundary.
		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}
		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}
		if s := strings.TrimSpace(string(runes[start : end+1])); s != "" {
			sentences = append(sentences, s)
		}
		i = end
		start = end + 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
