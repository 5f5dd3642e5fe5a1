// Package stream runs one cancellable, rate-controlled capture loop per
// connected observer. Loops share nothing with each other; a slow or
// failing capture on one connection never touches another.
package stream

import (
	"context"
	"encoding/base64"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DanDanTheMuffinMan/nova-memory-server/device"
	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
)

// FrameSource produces one encoded streaming frame per call.
type FrameSource interface {
	StreamFrame() ([]byte, error)
}

// Event is what a session pushes to its observer.
type Event struct {
	Type      string `json:"type"`
	Image     string `json:"image,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Event types on the wire.
const (
	EventFrame = "screen-frame"
	EventError = "stream-error"
)

// PushFunc delivers one event to the observer's connection. Pushing to a
// connection that has gone away must return an error, never panic.
type PushFunc func(Event) error

type session struct {
	cancel context.CancelFunc
	done   chan struct{}
	fps    float64
}

// Manager owns every live session, keyed by connection ID. It enforces the
// invariant that at most one loop runs per connection: a second start
// cancels the first, and waits for it to exit, before installing its own.
type Manager struct {
	frames FrameSource
	state  device.State
	maxFPS float64
	log    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewManager builds a session manager. maxFPS bounds requested frame
// rates; requests above it are clamped rather than rejected.
func NewManager(frames FrameSource, state device.State, maxFPS float64, log *zap.Logger) *Manager {
	return &Manager{
		frames:   frames,
		state:    state,
		maxFPS:   maxFPS,
		log:      log,
		sessions: make(map[string]*session),
	}
}

// Start begins a capture loop for connID at the requested frame rate. Any
// loop already running for that connection is torn down first. The gate
// being closed or a non-positive fps rejects the start without installing
// anything.
func (m *Manager) Start(connID string, fps float64, push PushFunc) error {
	if fps <= 0 {
		return fault.Invalid("fps must be positive, got %v", fps)
	}
	if !m.state.Available {
		return fault.Unavailable("screen streaming unavailable: %s", m.state.Reason)
	}
	if fps > m.maxFPS {
		m.log.Debug("clamping requested fps", zap.Float64("requested", fps), zap.Float64("max", m.maxFPS))
		fps = m.maxFPS
	}
	interval := time.Duration(math.Floor(1000/fps)) * time.Millisecond

	// Cancel-and-wait happens outside the lock: the exiting loop never
	// touches the sessions map, so this cannot deadlock, and waiting
	// guarantees no two loops ever capture for the same connection.
	m.mu.Lock()
	old := m.sessions[connID]
	delete(m.sessions, connID)
	m.mu.Unlock()
	if old != nil {
		old.cancel()
		<-old.done
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{cancel: cancel, done: make(chan struct{}), fps: fps}
	m.mu.Lock()
	m.sessions[connID] = s
	m.mu.Unlock()

	m.log.Info("stream started", zap.String("conn", connID), zap.Float64("fps", fps))
	go m.run(ctx, s, connID, interval, push)
	return nil
}

// Stop tears down the loop for connID, waiting until it has exited. It is
// a no-op when no session is live, so callers may invoke it on every
// disconnect path unconditionally.
func (m *Manager) Stop(connID string) {
	m.mu.Lock()
	s := m.sessions[connID]
	delete(m.sessions, connID)
	m.mu.Unlock()
	if s == nil {
		return
	}
	s.cancel()
	<-s.done
	m.log.Info("stream stopped", zap.String("conn", connID))
}

// Disconnect releases everything held for a connection. It is the same
// teardown as Stop; the separate name documents that it must run on every
// connection close, normal or not.
func (m *Manager) Disconnect(connID string) {
	m.Stop(connID)
}

// Active reports whether a loop is live for connID.
func (m *Manager) Active(connID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[connID] != nil
}

func (m *Manager) run(ctx context.Context, s *session, connID string, interval time.Duration, push PushFunc) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := m.frames.StreamFrame()
		if err != nil {
			// A transient capture failure must not kill an otherwise
			// healthy stream; report it and keep ticking.
			m.pushEvent(ctx, push, connID, Event{Type: EventError, Error: err.Error()})
			continue
		}
		m.pushEvent(ctx, push, connID, Event{
			Type:      EventFrame,
			Image:     base64.StdEncoding.EncodeToString(frame),
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

// pushEvent delivers one event unless the session was cancelled while the
// frame was being captured. A capture that completes after cancellation is
// discarded, never pushed at a closed connection.
func (m *Manager) pushEvent(ctx context.Context, push PushFunc, connID string, ev Event) {
	select {
	case <-ctx.Done():
		return
	default:
	}
	if err := push(ev); err != nil {
		m.log.Debug("push failed, observer likely gone", zap.String("conn", connID), zap.Error(err))
	}
}
