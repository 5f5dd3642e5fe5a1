// Package device abstracts the one physical keyboard/mouse/display the
// gateway controls. Exactly one implementation is selected at startup by
// Probe: a real hardware-backed device when a graphical session is usable,
// or a disabled variant whose every call reports the probe failure.
package device

import "image"

// State is the outcome of the startup probe. It is immutable afterwards;
// a host that gains or loses its display needs a process restart because
// the underlying handles are acquired once.
type State struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Device is the primitive hardware surface. Key tokens and button names
// are the normalized identifiers produced by the peripheral package, never
// raw client input.
//
// Input methods mutate shared hardware state and are serialized by the
// caller. Capture methods only read the display buffer and may run
// concurrently with anything.
type Device interface {
	// TypeString injects text as literal keystrokes.
	TypeString(text string) error

	// ToggleKey presses (down=true) or releases a single key.
	ToggleKey(key string, down bool) error

	// MoveMouse positions the cursor absolutely. smooth animates the path.
	MoveMouse(x, y int, smooth bool) error

	// Click presses a mouse button, optionally as a double click.
	Click(button string, double bool) error

	// Scroll moves the wheel; negative is up, positive is down.
	Scroll(amount int) error

	// CursorPosition reports the current pointer location.
	CursorPosition() (x, y int, err error)

	// CaptureDisplay grabs one frame of the primary display.
	CaptureDisplay() (*image.RGBA, error)

	// DisplayBounds reports the primary display dimensions.
	DisplayBounds() (width, height int, err error)
}
