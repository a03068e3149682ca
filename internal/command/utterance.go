package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// utterance pairs the original text with a lowercased copy of equal rune
// length, so an offset found in one is valid in the other.
type utterance struct {
	raw   []rune
	lower []rune
}

// span is a half-open rune range [start, end).
type span struct {
	start, end int
}

func newUtterance(text string) utterance {
	raw := []rune(text)
	lower := make([]rune, len(raw))
	for i, r := range raw {
		lower[i] = unicode.ToLower(r)
	}
	return utterance{raw: raw, lower: lower}
}

// find locates the first occurrence of the lowercase phrase at or after rune offset from.
func (u utterance) find(phrase string, from int) (span, bool) {
	if from > len(u.lower) {
		return span{}, false
	}
	hay := string(u.lower[from:])
	idx := strings.Index(hay, phrase)
	if idx < 0 {
		return span{}, false
	}
	start := from + utf8.RuneCountInString(hay[:idx])
	return span{start: start, end: start + utf8.RuneCountInString(phrase)}, true
}

// text returns the original text in [start, end), trimmed.
func (u utterance) text(start, end int) string {
	return strings.TrimSpace(string(u.raw[start:end]))
}

// rest returns the original text from start to the end, trimmed.
func (u utterance) rest(start int) string {
	return u.text(start, len(u.raw))
}
