package peripheral

import (
	"sync"

	"go.uber.org/zap"

	"github.com/DanDanTheMuffinMan/nova-memory-server/device"
	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
)

// Controller executes control commands against the single shared input
// device. All commands run inside one exclusive critical section so that
// concurrent press/release sequences never interleave and leave modifiers
// stuck down. Capture paths never take this lock.
type Controller struct {
	mu  sync.Mutex
	dev device.Device
	log *zap.Logger
}

// NewController wraps the probed device.
func NewController(dev device.Device, log *zap.Logger) *Controller {
	return &Controller{dev: dev, log: log}
}

// wrap classifies a device failure. Unavailability passes through; every
// other primitive failure becomes an execution error carrying the original
// message.
func wrap(err error) error {
	if err == nil || fault.KindOf(err) == fault.KindUnavailable {
		return err
	}
	return fault.Execution(err)
}

// TypeText injects text as literal keystrokes. The side effect is
// irreversible hardware input; there is no dry-run mode.
func (c *Controller) TypeText(text string) error {
	if text == "" {
		return fault.Invalid("text is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return wrap(c.dev.TypeString(text))
}

// PressKey presses the modifiers in order, taps the key, then releases the
// modifiers in reverse order. On a mid-chord failure every key already
// pressed is still released, in reverse, so hardware state stays
// symmetric.
func (c *Controller) PressKey(key Key, modifiers []Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var pressed []Key
	release := func() {
		for i := len(pressed) - 1; i >= 0; i-- {
			if err := c.dev.ToggleKey(pressed[i].Token, false); err != nil {
				c.log.Warn("failed to release key", zap.String("key", pressed[i].Token), zap.Error(err))
			}
		}
	}

	for _, m := range modifiers {
		if err := c.dev.ToggleKey(m.Token, true); err != nil {
			release()
			return wrap(err)
		}
		pressed = append(pressed, m)
	}
	if err := c.dev.ToggleKey(key.Token, true); err != nil {
		release()
		return wrap(err)
	}
	pressed = append(pressed, key)

	release()
	return nil
}

// MoveMouse positions the cursor absolutely. Zero is a valid coordinate;
// presence checking happens at the transport boundary.
func (c *Controller) MoveMouse(x, y int, smooth bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wrap(c.dev.MoveMouse(x, y, smooth))
}

// ClickMouse clicks the given button, optionally twice.
func (c *Controller) ClickMouse(button Button, double bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wrap(c.dev.Click(string(button), double))
}

// ScrollMouse scrolls by amount device units; negative is up, positive is
// down.
func (c *Controller) ScrollMouse(amount int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wrap(c.dev.Scroll(amount))
}

// MousePosition reports the current cursor location.
func (c *Controller) MousePosition() (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	x, y, err := c.dev.CursorPosition()
	return x, y, wrap(err)
}
