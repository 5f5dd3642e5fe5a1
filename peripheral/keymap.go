// Package peripheral turns user-facing control requests into serialized
// primitive operations on the shared input device.
package peripheral

import (
	"fmt"
	"strings"

	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
)

// Key is a normalized key identifier. Token is the device-level name;
// Modifier marks the keys that may be held as part of a chord.
type Key struct {
	Token    string
	Modifier bool
}

// Button is a normalized mouse button name understood by the device.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// keymap is the fixed vocabulary: named control keys, a-z, f1-f12 and the
// four modifier pairs. Lookups are by lowercased name.
var keymap = buildKeymap()

func buildKeymap() map[string]Key {
	m := map[string]Key{
		"enter":     {Token: "enter"},
		"escape":    {Token: "esc"},
		"backspace": {Token: "backspace"},
		"delete":    {Token: "delete"},
		"tab":       {Token: "tab"},
		"space":     {Token: "space"},
		"up":        {Token: "up"},
		"down":      {Token: "down"},
		"left":      {Token: "left"},
		"right":     {Token: "right"},
		"home":      {Token: "home"},
		"end":       {Token: "end"},
		"pageup":    {Token: "pageup"},
		"pagedown":  {Token: "pagedown"},

		"leftcontrol":  {Token: "lctrl", Modifier: true},
		"rightcontrol": {Token: "rctrl", Modifier: true},
		"leftshift":    {Token: "lshift", Modifier: true},
		"rightshift":   {Token: "rshift", Modifier: true},
		"leftalt":      {Token: "lalt", Modifier: true},
		"rightalt":     {Token: "ralt", Modifier: true},
		"leftsuper":    {Token: "lcmd", Modifier: true},
		"rightsuper":   {Token: "rcmd", Modifier: true},
	}
	for c := 'a'; c <= 'z'; c++ {
		s := string(c)
		m[s] = Key{Token: s}
	}
	for i := 1; i <= 12; i++ {
		s := fmt.Sprintf("f%d", i)
		m[s] = Key{Token: s}
	}
	return m
}

// ResolveKey maps a key name onto its identifier. Matching is
// case-insensitive but exact; names outside the vocabulary are rejected.
func ResolveKey(name string) (Key, error) {
	k, ok := keymap[strings.ToLower(name)]
	if !ok {
		return Key{}, fault.NotFound("unknown key %q", name)
	}
	return k, nil
}

// ResolveModifiers resolves each name independently, silently dropping
// anything that is not a known modifier. Order is preserved and
// duplicates are removed.
func ResolveModifiers(names []string) []Key {
	var mods []Key
	seen := make(map[string]bool)
	for _, name := range names {
		k, err := ResolveKey(name)
		if err != nil || !k.Modifier || seen[k.Token] {
			continue
		}
		seen[k.Token] = true
		mods = append(mods, k)
	}
	return mods
}

// ResolveButton maps a button name, defaulting to left when the name is
// absent or unrecognized.
func ResolveButton(name string) Button {
	switch strings.ToLower(name) {
	case "right":
		return ButtonRight
	case "middle":
		return ButtonMiddle
	default:
		return ButtonLeft
	}
}
