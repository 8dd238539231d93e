// Package golden automates expected-resource ("golden file") assertions.
//
// An Asserter compares actual content against an expected resource stored
// under the source tree, and on mismatch either regenerates the resource
// (when the update filter allows it) or fails with a report that tells the
// reader exactly how to re-run the test and how to accept the new output:
//
//	a := golden.New(golden.WithTB(t), golden.WithComparator(golden.JSON()))
//	a.Require(ctx, "composition/page1.json", actual)
//
// Expected resources live at two locations keyed by the same logical name:
// the version-controlled source path and the build-output target path. Both
// are rewritten together whenever a resource is regenerated.
//
// Regeneration is opted into through the testcommons.assert.update
// parameter, read from the TESTCOMMONS_ASSERT_UPDATE environment variable:
// a boolean token enables updates for every test, a comma-separated glob
// list enables them for matching test identifiers only.
package golden
