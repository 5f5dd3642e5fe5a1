// Package robot implements device.Device on real hardware using robotgo
// for input injection and kbinani/screenshot for display capture.
package robot

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// Device drives the host's primary keyboard, mouse and display.
type Device struct{}

// New returns a hardware-backed device. Callers must have verified that a
// graphical session exists; constructing one headless leaves every call
// failing at the X/CG layer.
func New() *Device {
	return &Device{}
}

func (d *Device) TypeString(text string) error {
	robotgo.TypeStr(text)
	return nil
}

func (d *Device) ToggleKey(key string, down bool) error {
	dir := "up"
	if down {
		dir = "down"
	}
	return robotgo.KeyToggle(key, dir)
}

func (d *Device) MoveMouse(x, y int, smooth bool) error {
	if smooth {
		if ok := robotgo.MoveSmooth(x, y); !ok {
			return fmt.Errorf("smooth move to %d,%d failed", x, y)
		}
		return nil
	}
	robotgo.Move(x, y)
	return nil
}

func (d *Device) Click(button string, double bool) error {
	robotgo.Click(button, double)
	return nil
}

func (d *Device) Scroll(amount int) error {
	switch {
	case amount < 0:
		robotgo.ScrollDir(-amount, "up")
	case amount > 0:
		robotgo.ScrollDir(amount, "down")
	}
	return nil
}

func (d *Device) CursorPosition() (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}

func (d *Device) CaptureDisplay() (*image.RGBA, error) {
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, fmt.Errorf("capture display 0: %w", err)
	}
	return img, nil
}

func (d *Device) DisplayBounds() (int, int, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return 0, 0, fmt.Errorf("no active displays")
	}
	b := screenshot.GetDisplayBounds(0)
	return b.Dx(), b.Dy(), nil
}
