//go:build unit

package golden

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdfclown/lib-testcommons/testcommons/log"
	"github.com/pdfclown/lib-testcommons/testcommons/logcapture"
)

func TestUpdateFilter_AbsentRejectsEverything(t *testing.T) {
	t.Parallel()

	filter := NewUpdateFilter(context.Background(), "", nil)
	require.False(t, filter.IsUpdatable("render/TestComposition"))
	require.False(t, filter.IsUpdatable(""))
}

func TestUpdateFilter_BooleanTokens(t *testing.T) {
	t.Parallel()

	filter := NewUpdateFilter(context.Background(), "true", nil)
	require.True(t, filter.IsUpdatable("render/TestComposition"))
	require.True(t, filter.IsUpdatable("anything/at/all"))

	filter = NewUpdateFilter(context.Background(), "1", nil)
	require.True(t, filter.IsUpdatable("render/TestComposition"))

	filter = NewUpdateFilter(context.Background(), "false", nil)
	require.False(t, filter.IsUpdatable("render/TestComposition"))
}

func TestUpdateFilter_BarePatternMatchesAtAnyDepth(t *testing.T) {
	t.Parallel()

	filter := NewUpdateFilter(context.Background(), "TestComposition", nil)

	require.True(t, filter.IsUpdatable("TestComposition"))
	require.True(t, filter.IsUpdatable("render/TestComposition"))
	require.True(t, filter.IsUpdatable("github.com/acme/proj/render/TestComposition"))
	require.False(t, filter.IsUpdatable("render/TestBarlines"))
	require.False(t, filter.IsUpdatable("render/TestCompositionExtra"))
}

func TestUpdateFilter_GlobList(t *testing.T) {
	t.Parallel()

	filter := NewUpdateFilter(context.Background(), "render/Test*, Test?Page", nil)

	require.True(t, filter.IsUpdatable("render/TestComposition"))
	require.False(t, filter.IsUpdatable("layout/TestComposition"))
	require.True(t, filter.IsUpdatable("any/depth/Test1Page"))
	require.False(t, filter.IsUpdatable("any/depth/Test12Page"))
}

func TestUpdateFilter_DoubleStarCrossesSegments(t *testing.T) {
	t.Parallel()

	filter := NewUpdateFilter(context.Background(), "github.com/acme/**/TestComposition", nil)

	require.True(t, filter.IsUpdatable("github.com/acme/proj/render/TestComposition"))
	require.False(t, filter.IsUpdatable("github.com/other/render/TestComposition"))
}

func TestUpdateFilter_MalformedPatternDegradesToDisabled(t *testing.T) {
	t.Parallel()

	captor := logcapture.New(t)
	// An unclosed character class survives glob translation and fails to
	// compile as a regex.
	filter := NewUpdateFilter(context.Background(), "Test[Unclosed", captor)

	require.False(t, filter.IsUpdatable("render/TestComposition"))
	require.False(t, filter.IsUpdatable("render/Test[Unclosed"))
	captor.AssertLogged(t, log.LevelWarn, "update filter")
}

func TestUpdateFilter_CharacterClass(t *testing.T) {
	t.Parallel()

	filter := NewUpdateFilter(context.Background(), "Test[AB]lock", nil)

	require.True(t, filter.IsUpdatable("render/TestAlock"))
	require.True(t, filter.IsUpdatable("render/TestBlock"))
	require.False(t, filter.IsUpdatable("render/TestClock"))
}

func TestUpdateFilter_NegatedCharacterClass(t *testing.T) {
	t.Parallel()

	filter := NewUpdateFilter(context.Background(), "Test[!AB]lock", nil)

	require.True(t, filter.IsUpdatable("render/TestClock"))
	require.False(t, filter.IsUpdatable("render/TestAlock"))
	require.False(t, filter.IsUpdatable("render/TestBlock"))
}

func TestUpdateFilter_NilReceiverRejects(t *testing.T) {
	t.Parallel()

	var filter *UpdateFilter
	require.False(t, filter.IsUpdatable("render/TestComposition"))
}
