package peripheral

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
)

func TestResolveKeyCaseInsensitive(t *testing.T) {
	for _, name := range []string{"enter", "Enter", "ENTER", "eNtEr"} {
		k, err := ResolveKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, "enter", k.Token, name)
		assert.False(t, k.Modifier)
	}
}

func TestResolveKeyVocabulary(t *testing.T) {
	for c := 'a'; c <= 'z'; c++ {
		k, err := ResolveKey(string(c))
		require.NoError(t, err)
		assert.Equal(t, string(c), k.Token)
	}
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("F%d", i)
		k, err := ResolveKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, fmt.Sprintf("f%d", i), k.Token)
	}
	k, err := ResolveKey("Escape")
	require.NoError(t, err)
	assert.Equal(t, "esc", k.Token)
}

func TestResolveKeyUnknown(t *testing.T) {
	for _, name := range []string{"", "bogus", "f13", "ctrl+c", "return"} {
		_, err := ResolveKey(name)
		require.Error(t, err, name)
		assert.Equal(t, fault.KindNotFound, fault.KindOf(err), name)
	}
}

func TestResolveKeyModifiers(t *testing.T) {
	pairs := map[string]string{
		"leftcontrol":  "lctrl",
		"rightcontrol": "rctrl",
		"leftshift":    "lshift",
		"rightshift":   "rshift",
		"leftalt":      "lalt",
		"rightalt":     "ralt",
		"leftsuper":    "lcmd",
		"rightsuper":   "rcmd",
	}
	for name, token := range pairs {
		k, err := ResolveKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, token, k.Token)
		assert.True(t, k.Modifier, name)
	}
}

func TestResolveModifiersDropsUnresolved(t *testing.T) {
	mods := ResolveModifiers([]string{"leftshift", "bogus"})
	require.Len(t, mods, 1)
	assert.Equal(t, "lshift", mods[0].Token)
}

func TestResolveModifiersDropsNonModifierKeys(t *testing.T) {
	// "a" resolves as a key but is not a modifier; it must not end up in
	// the chord.
	mods := ResolveModifiers([]string{"a", "leftcontrol"})
	require.Len(t, mods, 1)
	assert.Equal(t, "lctrl", mods[0].Token)
}

func TestResolveModifiersDeduplicatesPreservingOrder(t *testing.T) {
	mods := ResolveModifiers([]string{"leftshift", "leftcontrol", "LeftShift"})
	require.Len(t, mods, 2)
	assert.Equal(t, "lshift", mods[0].Token)
	assert.Equal(t, "lctrl", mods[1].Token)
}

func TestResolveModifiersEmpty(t *testing.T) {
	assert.Empty(t, ResolveModifiers(nil))
	assert.Empty(t, ResolveModifiers([]string{"nope", "alsono"}))
}

func TestResolveButton(t *testing.T) {
	assert.Equal(t, ButtonLeft, ResolveButton(""))
	assert.Equal(t, ButtonLeft, ResolveButton("left"))
	assert.Equal(t, ButtonLeft, ResolveButton("banana"))
	assert.Equal(t, ButtonRight, ResolveButton("right"))
	assert.Equal(t, ButtonRight, ResolveButton("Right"))
	assert.Equal(t, ButtonMiddle, ResolveButton("middle"))
}
