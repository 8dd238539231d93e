package golden

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/shopspring/decimal"
)

// Comparator decides equality of expected and actual resource content. A
// nil result means equal; a non-nil result carries the mismatch description
// used in failure reports.
type Comparator interface {
	Compare(expected, actual []byte) error
}

// ComparatorFunc adapts a plain function to the Comparator interface.
type ComparatorFunc func(expected, actual []byte) error

// Compare implements Comparator.
func (f ComparatorFunc) Compare(expected, actual []byte) error {
	return f(expected, actual)
}

// ---------------------------------------------------------------------------
// Bytes
// ---------------------------------------------------------------------------

// Bytes returns a byte-exact comparator. The mismatch description names the
// first differing offset.
//
//nolint:ireturn
func Bytes() Comparator {
	return ComparatorFunc(func(expected, actual []byte) error {
		if bytes.Equal(expected, actual) {
			return nil
		}

		limit := min(len(expected), len(actual))

		offset := 0
		for offset < limit && expected[offset] == actual[offset] {
			offset++
		}

		if offset == limit {
			return fmt.Errorf("content length differs: expected %d bytes, actual %d bytes", len(expected), len(actual))
		}

		return fmt.Errorf("content differs at offset %d: expected 0x%02x, actual 0x%02x",
			offset, expected[offset], actual[offset])
	})
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

// Text returns a line-oriented text comparator. The mismatch description is
// a unified diff of expected vs actual.
//
//nolint:ireturn
func Text() Comparator {
	return ComparatorFunc(func(expected, actual []byte) error {
		if bytes.Equal(expected, actual) {
			return nil
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(expected)),
			B:        difflib.SplitLines(string(actual)),
			FromFile: "expected",
			ToFile:   "actual",
			Context:  3,
		})
		if err != nil {
			return fmt.Errorf("content differs (diff unavailable: %v)", err)
		}

		return fmt.Errorf("content differs:\n%s", diff)
	})
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

// JSON returns a structural JSON comparator. Object key order is
// irrelevant; numeric leaves are compared exactly as decimals, so 1.0 and
// 1.00 are equal and large integers never round through float64. The
// mismatch description names the JSON path of the first difference.
//
//nolint:ireturn
func JSON() Comparator {
	return ComparatorFunc(func(expected, actual []byte) error {
		expectedValue, err := decodeJSON(expected)
		if err != nil {
			return fmt.Errorf("expected content is not valid JSON: %w", err)
		}

		actualValue, err := decodeJSON(actual)
		if err != nil {
			return fmt.Errorf("actual content is not valid JSON: %w", err)
		}

		return compareJSON("$", expectedValue, actualValue)
	})
}

// Model returns a comparator for JSON-serialized domain models: both sides
// are unmarshaled into T (dropping unknown formatting and field order) and
// the re-marshaled canonical forms are compared structurally.
//
//nolint:ireturn
func Model[T any]() Comparator {
	return ComparatorFunc(func(expected, actual []byte) error {
		canonExpected, err := canonicalModel[T](expected)
		if err != nil {
			return fmt.Errorf("expected content does not decode into the model: %w", err)
		}

		canonActual, err := canonicalModel[T](actual)
		if err != nil {
			return fmt.Errorf("actual content does not decode into the model: %w", err)
		}

		return JSON().Compare(canonExpected, canonActual)
	})
}

func canonicalModel[T any](raw []byte) ([]byte, error) {
	var model T
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, err
	}

	return json.Marshal(model)
}

// decodeJSON parses raw JSON keeping numbers as json.Number so decimal
// comparison stays exact.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// compareJSON walks both values and reports the first difference with its
// JSON path.
func compareJSON(path string, expected, actual any) error {
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return typeMismatch(path, expected, actual)
		}

		for _, key := range sortedKeys(exp) {
			actValue, present := act[key]
			if !present {
				return fmt.Errorf("%s.%s: missing in actual", path, key)
			}

			if err := compareJSON(path+"."+key, exp[key], actValue); err != nil {
				return err
			}
		}

		for _, key := range sortedKeys(act) {
			if _, present := exp[key]; !present {
				return fmt.Errorf("%s.%s: unexpected in actual", path, key)
			}
		}

		return nil
	case []any:
		act, ok := actual.([]any)
		if !ok {
			return typeMismatch(path, expected, actual)
		}

		if len(exp) != len(act) {
			return fmt.Errorf("%s: array length differs: expected %d, actual %d", path, len(exp), len(act))
		}

		for i := range exp {
			if err := compareJSON(path+"["+strconv.Itoa(i)+"]", exp[i], act[i]); err != nil {
				return err
			}
		}

		return nil
	case json.Number:
		act, ok := actual.(json.Number)
		if !ok {
			return typeMismatch(path, expected, actual)
		}

		return compareNumbers(path, exp, act)
	default:
		if expected != actual {
			return fmt.Errorf("%s: expected %v, actual %v", path, jsonScalar(expected), jsonScalar(actual))
		}

		return nil
	}
}

// compareNumbers compares two JSON numbers as exact decimals.
func compareNumbers(path string, expected, actual json.Number) error {
	expDec, err := decimal.NewFromString(expected.String())
	if err != nil {
		return fmt.Errorf("%s: expected number %q unparsable: %w", path, expected, err)
	}

	actDec, err := decimal.NewFromString(actual.String())
	if err != nil {
		return fmt.Errorf("%s: actual number %q unparsable: %w", path, actual, err)
	}

	if !expDec.Equal(actDec) {
		return fmt.Errorf("%s: expected %s, actual %s", path, expected, actual)
	}

	return nil
}

func typeMismatch(path string, expected, actual any) error {
	return fmt.Errorf("%s: type differs: expected %s, actual %s", path, jsonTypeName(expected), jsonTypeName(actual))
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func jsonScalar(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}

	if v == nil {
		return "null"
	}

	return fmt.Sprintf("%v", v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
