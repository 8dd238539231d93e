// Package paramtest builds parameterized-test argument tuples from
// per-parameter value lists and keeps them synchronized with their expected
// results.
//
// A tuple stream pairs each argument combination with one Expected outcome,
// either a regular value or a thrown Failure:
//
//	tuples, err := paramtest.Stream(paramtest.Simple(),
//	    []*paramtest.Expected{
//	        paramtest.Success(2),
//	        paramtest.Success(4),
//	        paramtest.Success(6),
//	    },
//	    []any{1, 2, 3},
//	    []any{2, 2, 2},
//	)
//	...
//	for _, tu := range tuples {
//	    t.Run(tu.Name(), func(t *testing.T) {
//	        actual := paramtest.Eval(func() (any, error) {
//	            return multiply(tu.Args[0].Value, tu.Args[1].Value)
//	        })
//	        paramtest.AssertParameterized(t, tu, actual, tu.Feed)
//	    })
//	}
//
// Passing a nil expected list enters generation mode: no assertions run;
// instead the stream's generator collects one copy-pasteable source literal
// per tuple and emits the whole expected list when the last tuple has been
// consumed. Run once, paste the output back into the test, re-run for real.
package paramtest
