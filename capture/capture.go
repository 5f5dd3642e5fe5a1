// Package capture produces point-in-time frames and display metadata.
// Capture is read-only and stateless; it deliberately bypasses the input
// device critical section so a slow grab never delays command execution.
package capture

import (
	"bytes"
	"image/jpeg"
	"image/png"

	"go.uber.org/zap"

	"github.com/DanDanTheMuffinMan/nova-memory-server/device"
	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
)

// Formats accepted by Still. The parameter is case-sensitive by contract.
const (
	FormatPNG  = "png"
	FormatJPG  = "jpg"
	FormatJPEG = "jpeg"
)

// Service encodes frames read from the probed device.
type Service struct {
	dev           device.Device
	stillQuality  int
	streamQuality int
	log           *zap.Logger
}

// NewService builds a capture service. stillQuality and streamQuality are
// jpeg quality settings (1-100) for on-demand stills and streamed frames.
func NewService(dev device.Device, stillQuality, streamQuality int, log *zap.Logger) *Service {
	return &Service{
		dev:           dev,
		stillQuality:  stillQuality,
		streamQuality: streamQuality,
		log:           log,
	}
}

// Still grabs one frame and encodes it. An empty format defaults to png;
// anything outside the documented enum is rejected before touching the
// display.
func (s *Service) Still(format string) ([]byte, string, error) {
	if format == "" {
		format = FormatPNG
	}
	switch format {
	case FormatPNG, FormatJPG, FormatJPEG:
	default:
		return nil, "", fault.Invalid("invalid format %q: must be png, jpg or jpeg", format)
	}

	img, err := s.dev.CaptureDisplay()
	if err != nil {
		return nil, "", wrap(err)
	}

	var buf bytes.Buffer
	if format == FormatPNG {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fault.Execution(err)
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.stillQuality}); err != nil {
		return nil, "", fault.Execution(err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// StreamFrame grabs one frame in the fast lossy encoding used by live
// streaming sessions.
func (s *Service) StreamFrame() ([]byte, error) {
	img, err := s.dev.CaptureDisplay()
	if err != nil {
		return nil, wrap(err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.streamQuality}); err != nil {
		return nil, fault.Execution(err)
	}
	return buf.Bytes(), nil
}

// Info reports the primary display dimensions.
func (s *Service) Info() (width, height int, err error) {
	w, h, err := s.dev.DisplayBounds()
	return w, h, wrap(err)
}

func wrap(err error) error {
	if err == nil || fault.KindOf(err) == fault.KindUnavailable {
		return err
	}
	return fault.Execution(err)
}
