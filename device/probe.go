package device

import (
	"fmt"
	"os"
	"runtime"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"

	"github.com/DanDanTheMuffinMan/nova-memory-server/device/disabled"
	"github.com/DanDanTheMuffinMan/nova-memory-server/device/robot"
)

// Probe decides once, at process start, whether hardware control and
// capture are usable. It never retries: the returned State is sticky for
// the process lifetime.
func Probe(log *zap.Logger) (Device, State) {
	if reason := probeFailure(); reason != "" {
		log.Warn("peripheral control disabled", zap.String("reason", reason))
		return disabled.New(reason), State{Available: false, Reason: reason}
	}
	log.Info("peripheral control available")
	return robot.New(), State{Available: true}
}

func probeFailure() string {
	if runtime.GOOS == "linux" {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return "no graphical session (DISPLAY and WAYLAND_DISPLAY are unset)"
		}
	}
	n := displayCount()
	if n <= 0 {
		return "no active displays detected"
	}
	return ""
}

// displayCount guards against capture backends that panic instead of
// reporting zero displays on broken sessions.
func displayCount() (n int) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
		}
	}()
	return screenshot.NumActiveDisplays()
}

// Describe renders a State for logs and health responses.
func Describe(s State) string {
	if s.Available {
		return "available"
	}
	return fmt.Sprintf("unavailable: %s", s.Reason)
}
