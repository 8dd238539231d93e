package testcommons

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Ellipsis is the marker appended to abbreviated strings.
const Ellipsis = "..."

// quoteRunes are the characters treated as literal delimiters by Abbreviate.
const quoteRunes = "\"'`"

// Abbreviate shortens s to at most maxLen runes, appending Ellipsis when a
// cut occurs. If s is wrapped in matching quote characters and the trailing
// quote is cut away, the quote is re-appended after the ellipsis so the
// result still reads as a plausible literal fragment.
//
// maxLen values smaller than the ellipsis itself are raised to fit it.
func Abbreviate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	if maxLen < len(Ellipsis)+1 {
		maxLen = len(Ellipsis) + 1
	}

	runes := []rune(s)
	cut := string(runes[:maxLen-len(Ellipsis)]) + Ellipsis

	first := runes[0]
	last := runes[len(runes)-1]

	if first == last && strings.ContainsRune(quoteRunes, first) && !strings.HasSuffix(cut, string(last)) {
		cut += string(last)
	}

	return cut
}

// Coalesce returns the first non-empty string among the given values.
func Coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// FirstLine returns s truncated at its first line break, with Ellipsis
// appended when further lines were dropped.
func FirstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimRight(s[:idx], "\r") + Ellipsis
	}

	return s
}

// HeadLines returns at most n leading lines of s, with a trailing marker
// naming how many lines were dropped.
func HeadLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}

	head := strings.Join(lines[:n], "\n")

	return head + "\n" + Ellipsis + " (" + strconv.Itoa(len(lines)-n) + " more lines in the assertion log)"
}
