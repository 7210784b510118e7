package report

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Separator splits a key from its value on a report line.
const Separator = ":"

// Line is one structured line of a report.
type Line struct {
	// Number is the 1-based physical line number in the raw text.
	Number int
	// Column is the character offset of the separator, or of the first comma
	// when the key contains one.
	Column int
	Key    string
	Value  string
}

// Tokenize returns a lazy sequence of the structured lines in raw. Blank lines
// and lines without a separator (banners, prompts) are skipped. The sequence
// holds no state between iterations and can be ranged over again.
func Tokenize(raw string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		number := 0
		for text := range strings.Lines(raw) {
			number++
			text = strings.TrimRight(text, "\r\n")
			if strings.TrimSpace(text) == "" {
				continue
			}
			line, ok := tokenizeLine(text)
			if !ok {
				continue
			}
			line.Number = number
			if !yield(line) {
				return
			}
		}
	}
}

// tokenizeLine splits a single non-blank line. Keys such as "ssid, 5GHz" are
// aligned on their comma, not their colon, so the column is taken from the
// comma in that case.
func tokenizeLine(text string) (Line, bool) {
	idx := strings.Index(text, Separator)
	if idx < 0 {
		return Line{}, false
	}
	key := text[:idx]
	column := idx
	if comma := strings.Index(key, ","); comma >= 0 {
		column = comma
	}
	return Line{
		Column: utf8.RuneCountInString(text[:column]),
		Key:    strings.TrimSpace(key),
		Value:  strings.TrimSpace(text[idx+len(Separator):]),
	}, true
}
