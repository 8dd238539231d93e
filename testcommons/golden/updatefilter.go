package golden

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfclown/lib-testcommons/testcommons/log"
	"github.com/pdfclown/lib-testcommons/testcommons/safe"
)

// UpdateFilter decides whether a test identifier may regenerate its
// expected resources.
//
// The filter is derived once from the testcommons.assert.update parameter:
//
//   - absent: updates disabled for everything;
//   - boolean token ("true", "1", ...): updates enabled for everything;
//   - otherwise: a comma-separated list of glob patterns over
//     fully-qualified, slash-separated test identifiers. Bare patterns
//     (without a slash) match a test at any depth.
//
// A malformed pattern list never fails the test run; it degrades to
// "updates disabled" with a warning, since a broken opt-in convenience must
// not block test execution.
type UpdateFilter struct {
	all     bool
	pattern *regexp.Regexp
}

// NewUpdateFilter builds an UpdateFilter from the raw parameter value.
func NewUpdateFilter(ctx context.Context, value string, logger log.Logger) *UpdateFilter {
	if logger == nil {
		logger = &log.NopLogger{}
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return &UpdateFilter{}
	}

	if all, err := strconv.ParseBool(value); err == nil {
		return &UpdateFilter{all: all}
	}

	pattern, err := compileGlobs(strings.Split(value, ","))
	if err != nil {
		logger.Log(ctx, log.LevelWarn, "invalid update filter, resource updates disabled",
			log.String("value", value), log.Err(err))

		return &UpdateFilter{}
	}

	return &UpdateFilter{pattern: pattern}
}

// IsUpdatable reports whether the given test identifier may have its
// expected resources regenerated.
func (f *UpdateFilter) IsUpdatable(testID string) bool {
	if f == nil {
		return false
	}

	if f.all {
		return true
	}

	if f.pattern == nil {
		return false
	}

	return f.pattern.MatchString(testID)
}

// compileGlobs translates the glob patterns to one OR-combined, anchored
// regular expression.
func compileGlobs(globs []string) (*regexp.Regexp, error) {
	alternatives := make([]string, 0, len(globs))

	for _, glob := range globs {
		glob = strings.TrimSpace(glob)
		if glob == "" {
			continue
		}

		// Bare patterns match at any path depth.
		prefix := ""
		if !strings.Contains(glob, "/") {
			prefix = `(?:.*/)?`
		}

		alternatives = append(alternatives, prefix+globToRegex(glob))
	}

	return safe.Compile(`^(?:` + strings.Join(alternatives, "|") + `)$`)
}

// globToRegex translates one glob pattern: `**` crosses path segments, `*`
// and `?` stay within one, character classes pass through (`[!...]`
// negation becomes `[^...]`), everything else is quoted.
func globToRegex(glob string) string {
	var sb strings.Builder

	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				sb.WriteString(`.*`)

				i++
			} else {
				sb.WriteString(`[^/]*`)
			}
		case '?':
			sb.WriteString(`[^/]`)
		case '[':
			sb.WriteByte('[')

			if i+1 < len(glob) && glob[i+1] == '!' {
				sb.WriteByte('^')

				i++
			}
		case ']':
			sb.WriteByte(']')
		default:
			sb.WriteString(regexp.QuoteMeta(string(glob[i])))
		}
	}

	return sb.String()
}
