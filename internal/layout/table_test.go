package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableInvariants(t *testing.T) {
	for code, chars := range Table {
		require.NotEqual(t, rune(0), chars.Primary, "scancode %d has empty primary", code)
		require.NotEqual(t, rune(0), chars.Secondary, "scancode %d has empty secondary", code)
	}
}

func TestScancodeForCharRoundTrip(t *testing.T) {
	for code, chars := range Table {
		gotPrimary, ok := ScancodeForChar(chars.Primary)
		require.True(t, ok)
		if chars.Primary == '.' {
			// '.' collides with KeySlash's secondary; KeySlash wins deterministically.
			require.Equal(t, KeySlash, gotPrimary)
		} else {
			require.Equal(t, code, gotPrimary)
		}

		gotSecondary, ok := ScancodeForChar(chars.Secondary)
		require.True(t, ok)
		if chars.Secondary == '.' {
			require.Equal(t, KeySlash, gotSecondary)
		} else {
			require.Equal(t, code, gotSecondary)
		}
	}
}

func TestDotCollisionResolvesToKeySlash(t *testing.T) {
	code, ok := ScancodeForChar('.')
	require.True(t, ok)
	require.Equal(t, KeySlash, code)
}

func TestPrimarySecondaryRendering(t *testing.T) {
	buf := []KeyCode{KeyG, KeyH, KeyB, KeyD, KeyT, KeyN}
	require.Equal(t, "ghbdtn", Primary(buf))
	require.Equal(t, "привет", Secondary(buf))
}

func TestIsPrintable(t *testing.T) {
	require.True(t, IsPrintable(KeyA))
	require.False(t, IsPrintable(KeyEsc))
	require.False(t, IsPrintable(KeySpace))
}
