//go:build unit

package paramtest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_CartesianCommentsGroupHierarchically(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	tuples := MustStream(t, Cartesian(WithSink(&out), WithoutClipboard()),
		nil,
		[]any{"x", "y"},
		[]any{1, 2, 3},
	)
	require.Len(t, tuples, 6)

	for _, tu := range tuples {
		actual := tu.Args[0].Label + tu.Args[1].Label
		AssertParameterized(t, tu, actual, tu.Feed)
	}

	require.Equal(t, strings.Join([]string{
		"// arg0[0]: x",
		"//   arg1[0]: 1",
		`paramtest.Success("x1"),`,
		"//   arg1[1]: 2",
		`paramtest.Success("x2"),`,
		"//   arg1[2]: 3",
		`paramtest.Success("x3"),`,
		groupSeparator,
		"// arg0[1]: y",
		"//   arg1[0]: 1",
		`paramtest.Success("y1"),`,
		"//   arg1[1]: 2",
		`paramtest.Success("y2"),`,
		"//   arg1[2]: 3",
		`paramtest.Success("y3"),`,
		"",
	}, "\n"), out.String())
}

func TestGenerator_CommentsAbbreviatedLiteralsNot(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	long := "abcdefghijklmnop"
	tuples := MustStream(t, Simple(WithSink(&out), WithoutClipboard(), WithCommentWidth(10)),
		nil,
		[]any{Arg(`"`+long+`"`, long)},
	)

	AssertParameterized(t, tuples[0], long, tuples[0].Feed)

	block := out.String()
	// Comment value is cut at the width, with the closing quote re-appended.
	require.Contains(t, block, `// arg0[0]: "abcdef..."`)
	// The generated literal keeps the full value.
	require.Contains(t, block, `paramtest.Success("`+long+`"),`)
}

func TestGenerator_FailureOutcomeLiteral(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	tuples := MustStream(t, Simple(WithSink(&out), WithoutClipboard()),
		nil,
		[]any{0},
	)

	failure := Failure{Kind: "errors.errorString", Message: "division by zero"}
	AssertParameterized(t, tuples[0], failure, tuples[0].Feed)

	require.Contains(t, out.String(), `paramtest.Fail("errors.errorString", "division by zero"),`)
}

func TestGenerator_FlushRequiresCompletion(t *testing.T) {
	t.Parallel()

	gen := newExpectedGenerator(Simple(), []int{2}, 2)

	require.NoError(t, gen.Generate(1, []Argument{Arg("a", 1)}))
	require.False(t, gen.Done())
	require.ErrorContains(t, gen.Flush(), "incomplete")

	require.NoError(t, gen.Generate(2, []Argument{Arg("b", 2)}))
	require.True(t, gen.Done())
}

func TestGenerator_SinkWinsWhenClipboardDisabled(t *testing.T) {
	t.Setenv(EnvClipboard, "true")

	var out bytes.Buffer

	gen := newExpectedGenerator(Simple(WithSink(&out), WithoutClipboard()), []int{1}, 1)
	require.NoError(t, gen.Generate("v", []Argument{Arg("a", "v")}))
	require.NoError(t, gen.Flush())

	require.Contains(t, out.String(), `paramtest.Success("v"),`)
}

func TestSourceLiteral_Forms(t *testing.T) {
	t.Parallel()

	type box struct{ N int }

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "nil"},
		{name: "string quoted", value: `say "hi"`, want: `"say \"hi\""`},
		{name: "int", value: 42, want: "42"},
		{name: "negative float", value: -2.5, want: "-2.5"},
		{name: "bool", value: true, want: "true"},
		{name: "struct go syntax", value: box{N: 7}, want: `paramtest.box{N:7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, sourceLiteral(tt.value))
		})
	}
}

func TestExpectedLiteral_RecognizesFailures(t *testing.T) {
	t.Parallel()

	require.Equal(t, `paramtest.Fail("k", "m")`, expectedLiteral(Failure{Kind: "k", Message: "m"}))
	require.Equal(t, `paramtest.Fail("k", "m")`, expectedLiteral(&Failure{Kind: "k", Message: "m"}))
	require.Equal(t, `paramtest.Success(1)`, expectedLiteral(1))
}
