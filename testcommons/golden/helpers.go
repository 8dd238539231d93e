package golden

import "testing"

// RequireBytes asserts actual against the named resource byte-exactly,
// failing t on terminal mismatch.
func RequireBytes(t *testing.T, name string, actual []byte) {
	t.Helper()
	New(WithTB(t)).Require(t.Context(), name, actual)
}

// RequireText asserts actual against the named resource as text, reporting
// mismatches as unified diffs.
func RequireText(t *testing.T, name string, actual []byte) {
	t.Helper()
	New(WithTB(t), WithComparator(Text())).Require(t.Context(), name, actual)
}

// RequireJSON asserts actual against the named resource structurally as
// JSON.
func RequireJSON(t *testing.T, name string, actual []byte) {
	t.Helper()
	New(WithTB(t), WithComparator(JSON())).Require(t.Context(), name, actual)
}
