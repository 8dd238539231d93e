//go:build unit

package golden

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedID(t *testing.T) {
	t.Parallel()

	id, ok := FixedID("render/TestComposition").CurrentTestID()
	require.True(t, ok)
	require.Equal(t, "render/TestComposition", id)

	_, ok = FixedID("").CurrentTestID()
	require.False(t, ok)
}

func TestStackResolver_FindsEnclosingTest(t *testing.T) {
	t.Parallel()

	id, ok := StackResolver{}.CurrentTestID()
	require.True(t, ok)
	require.True(t, strings.HasSuffix(id, "/TestStackResolver_FindsEnclosingTest"), "got %q", id)
	require.Contains(t, id, "golden/TestStackResolver_")
}

func TestStackResolver_SeesThroughSubtestClosuresAndHelpers(t *testing.T) {
	t.Parallel()

	resolve := func() (string, bool) {
		// One helper frame between the test body and the resolver.
		return StackResolver{}.CurrentTestID()
	}

	t.Run("nested", func(t *testing.T) {
		id, ok := resolve()
		require.True(t, ok)
		require.True(t, strings.HasSuffix(id, "/TestStackResolver_SeesThroughSubtestClosuresAndHelpers"), "got %q", id)
	})
}
