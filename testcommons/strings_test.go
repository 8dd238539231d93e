//go:build unit

package testcommons

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbbreviate_ShortStringUntouched(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", Abbreviate("short", 50))
}

func TestAbbreviate_ExactLengthUntouched(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("a", 50)
	require.Equal(t, s, Abbreviate(s, 50))
}

func TestAbbreviate_CutsWithEllipsis(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("a", 60)
	got := Abbreviate(s, 50)
	require.Len(t, got, 50)
	require.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestAbbreviate_ReappendsCutQuote(t *testing.T) {
	t.Parallel()

	s := `"` + strings.Repeat("x", 60) + `"`
	got := Abbreviate(s, 20)
	require.True(t, strings.HasPrefix(got, `"`))
	require.True(t, strings.HasSuffix(got, Ellipsis+`"`))
}

func TestAbbreviate_UnmatchedQuoteNotReappended(t *testing.T) {
	t.Parallel()

	s := `"` + strings.Repeat("x", 60)
	got := Abbreviate(s, 20)
	require.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestAbbreviate_TinyMaxStillCarriesEllipsis(t *testing.T) {
	t.Parallel()

	got := Abbreviate("abcdefgh", 2)
	require.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestCoalesce(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a", Coalesce("", "a", "b"))
	require.Equal(t, "", Coalesce("", ""))
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, "plain", FirstLine("plain"))
	require.Equal(t, "first"+Ellipsis, FirstLine("first\nsecond\nthird"))
	require.Equal(t, "crlf"+Ellipsis, FirstLine("crlf\r\nsecond"))
}

func TestHeadLines(t *testing.T) {
	t.Parallel()

	s := "a\nb\nc\nd"
	require.Equal(t, s, HeadLines(s, 4))

	got := HeadLines(s, 2)
	require.True(t, strings.HasPrefix(got, "a\nb\n"))
	require.Contains(t, got, "2 more lines")
}

func TestContextLogger_RoundTrip(t *testing.T) {
	t.Parallel()

	// A nil context and a bare context both fall back to the nop logger.
	require.NotNil(t, LoggerFromContext(nil)) //nolint:staticcheck
	require.NotNil(t, LoggerFromContext(t.Context()))

	logger := LoggerFromContext(t.Context())
	ctx := ContextWithLogger(t.Context(), logger)
	require.Same(t, logger, LoggerFromContext(ctx))
}
