package text

import (
	"strings"
)

// Wrap breaks s into display lines no wider than maxWidth.
//
// Explicit line breaks separate paragraphs and an empty line is emitted between
// consecutive paragraphs. Words are accumulated greedily; a word wider than
// maxWidth on its own is split rune by rune and its last chunk seeds the next
// line. The result always has at least one line, so an empty input yields [""].
func Wrap(m Metrics, s string, maxWidth float64, weight Weight, size float64) []string {
	if s == "" {
		return []string{""}
	}

	paragraphs := splitParagraphs(s)
	lines := make([]string, 0, len(paragraphs))

	fits := func(candidate string) bool {
		return m.Width(candidate, weight, size) <= maxWidth
	}

	for i, para := range paragraphs {
		line := ""
		for _, word := range strings.Split(para, " ") {
			if word == "" {
				continue
			}
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if fits(candidate) {
				line = candidate
				continue
			}

			if line != "" {
				lines = append(lines, line)
			}
			if fits(word) {
				line = word
				continue
			}
			chunks := hardBreak(word, fits)
			lines = append(lines, chunks[:len(chunks)-1]...)
			line = chunks[len(chunks)-1]
		}
		if line != "" {
			lines = append(lines, line)
		}
		if i < len(paragraphs)-1 {
			lines = append(lines, "")
		}
	}

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// hardBreak splits word into chunks that each satisfy fits. A single rune
// that does not fit still forms its own chunk so progress is guaranteed.
func hardBreak(word string, fits func(string) bool) []string {
	var chunks []string
	var chunk strings.Builder
	for _, r := range word {
		next := chunk.String() + string(r)
		if chunk.Len() == 0 || fits(next) {
			chunk.WriteRune(r)
			continue
		}
		chunks = append(chunks, chunk.String())
		chunk.Reset()
		chunk.WriteRune(r)
	}
	return append(chunks, chunk.String())
}

// splitParagraphs normalizes line endings, turns tabs into spaces and strips
// the remaining control characters from every paragraph.
func splitParagraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	paragraphs := strings.Split(s, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = Sanitize(strings.ReplaceAll(p, "\t", " "))
	}
	return paragraphs
}
