// Package disabled implements device.Device for hosts without a usable
// graphical session. Every call fails with the reason recorded at probe
// time, so callers see a consistent unavailable condition instead of a
// nil-check scattered across the codebase.
package disabled

import (
	"image"

	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
)

// Device rejects every operation.
type Device struct {
	reason string
}

// New returns a disabled device carrying the probe failure reason.
func New(reason string) *Device {
	return &Device{reason: reason}
}

func (d *Device) unavailable() error {
	return fault.Unavailable("peripheral control unavailable: %s", d.reason)
}

func (d *Device) TypeString(string) error { return d.unavailable() }

func (d *Device) ToggleKey(string, bool) error { return d.unavailable() }

func (d *Device) MoveMouse(int, int, bool) error { return d.unavailable() }

func (d *Device) Click(string, bool) error { return d.unavailable() }

func (d *Device) Scroll(int) error { return d.unavailable() }

func (d *Device) CursorPosition() (int, int, error) { return 0, 0, d.unavailable() }

func (d *Device) CaptureDisplay() (*image.RGBA, error) { return nil, d.unavailable() }

func (d *Device) DisplayBounds() (int, int, error) { return 0, 0, d.unavailable() }
