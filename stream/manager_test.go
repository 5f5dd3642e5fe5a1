package stream

import (
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DanDanTheMuffinMan/nova-memory-server/device"
	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
)

// fakeFrames produces numbered frames, failing every failEvery-th call.
type fakeFrames struct {
	mu        sync.Mutex
	calls     int
	failEvery int
}

func (f *fakeFrames) StreamFrame() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failEvery > 0 && f.calls%f.failEvery == 0 {
		return nil, errors.New("display locked")
	}
	return []byte{0xFF, 0xD8, byte(f.calls)}, nil
}

// pushRecorder collects events like an observer connection would.
type pushRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (p *pushRecorder) push(ev Event) error {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
	return nil
}

func (p *pushRecorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func (p *pushRecorder) snapshot() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func availableManager(frames FrameSource) *Manager {
	return NewManager(frames, device.State{Available: true}, 100, zap.NewNop())
}

func TestStartRejectsNonPositiveFPS(t *testing.T) {
	m := availableManager(&fakeFrames{})
	for _, fps := range []float64{0, -1, -0.5} {
		err := m.Start("conn-1", fps, (&pushRecorder{}).push)
		assert.Equal(t, fault.KindInvalid, fault.KindOf(err))
	}
	assert.False(t, m.Active("conn-1"))
}

func TestStartRejectsWhenGateClosed(t *testing.T) {
	m := NewManager(&fakeFrames{}, device.State{Available: false, Reason: "headless host"}, 100, zap.NewNop())
	err := m.Start("conn-1", 1, (&pushRecorder{}).push)
	require.Error(t, err)
	assert.Equal(t, fault.KindUnavailable, fault.KindOf(err))
	assert.Contains(t, err.Error(), "headless host")
	assert.False(t, m.Active("conn-1"))
}

func TestFramesArePushed(t *testing.T) {
	m := availableManager(&fakeFrames{})
	rec := &pushRecorder{}
	require.NoError(t, m.Start("conn-1", 50, rec.push))
	defer m.Stop("conn-1")

	require.Eventually(t, func() bool { return rec.count() >= 2 }, 2*time.Second, 5*time.Millisecond)

	for _, ev := range rec.snapshot() {
		assert.Equal(t, EventFrame, ev.Type)
		data, err := base64.StdEncoding.DecodeString(ev.Image)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])
		_, err = time.Parse(time.RFC3339Nano, ev.Timestamp)
		assert.NoError(t, err)
	}
}

func TestSecondStartSupersedesFirst(t *testing.T) {
	m := availableManager(&fakeFrames{})
	first := &pushRecorder{}
	second := &pushRecorder{}

	require.NoError(t, m.Start("conn-1", 50, first.push))
	require.Eventually(t, func() bool { return first.count() >= 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, m.Start("conn-1", 50, second.push))
	defer m.Stop("conn-1")

	// The first loop is fully torn down before the second is installed:
	// from here on its push count never moves.
	frozen := first.count()
	require.Eventually(t, func() bool { return second.count() >= 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, frozen, first.count(), "superseded loop must not push")
	assert.True(t, m.Active("conn-1"))
}

func TestStopEndsPushesAndIsIdempotent(t *testing.T) {
	m := availableManager(&fakeFrames{})
	rec := &pushRecorder{}
	require.NoError(t, m.Start("conn-1", 50, rec.push))
	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 5*time.Millisecond)

	m.Stop("conn-1")
	assert.False(t, m.Active("conn-1"))

	frozen := rec.count()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, frozen, rec.count(), "no pushes after stop")

	// Stop while idle is a no-op.
	m.Stop("conn-1")
	m.Stop("never-started")
}

func TestDisconnectReleasesSession(t *testing.T) {
	m := availableManager(&fakeFrames{})
	rec := &pushRecorder{}
	require.NoError(t, m.Start("conn-1", 50, rec.push))
	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 5*time.Millisecond)

	m.Disconnect("conn-1")
	assert.False(t, m.Active("conn-1"))

	frozen := rec.count()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, frozen, rec.count(), "no pushes after disconnect")
}

func TestTickFailureDoesNotKillStream(t *testing.T) {
	// Every second capture fails; the stream must keep delivering the
	// successful ones and report the failures as events.
	m := availableManager(&fakeFrames{failEvery: 2})
	rec := &pushRecorder{}
	require.NoError(t, m.Start("conn-1", 50, rec.push))
	defer m.Stop("conn-1")

	require.Eventually(t, func() bool { return rec.count() >= 4 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, m.Active("conn-1"), "stream survives capture failures")

	var frames, failures int
	for _, ev := range rec.snapshot() {
		switch ev.Type {
		case EventFrame:
			frames++
		case EventError:
			failures++
			assert.Contains(t, ev.Error, "display locked")
		}
	}
	assert.Greater(t, frames, 0)
	assert.Greater(t, failures, 0)
}

func TestRequestedFPSIsClamped(t *testing.T) {
	// Ceiling of 10 fps -> at most one push per 100ms tick. A request for
	// 1000 fps must not get anywhere near its asked-for cadence.
	m := NewManager(&fakeFrames{}, device.State{Available: true}, 10, zap.NewNop())
	rec := &pushRecorder{}
	require.NoError(t, m.Start("conn-1", 1000, rec.push))

	time.Sleep(350 * time.Millisecond)
	m.Stop("conn-1")
	assert.LessOrEqual(t, rec.count(), 6, "push cadence bounded by max_fps")
}

func TestIndependentConnections(t *testing.T) {
	m := availableManager(&fakeFrames{})
	a := &pushRecorder{}
	b := &pushRecorder{}
	require.NoError(t, m.Start("conn-a", 50, a.push))
	require.NoError(t, m.Start("conn-b", 50, b.push))

	require.Eventually(t, func() bool { return a.count() >= 2 && b.count() >= 2 }, 2*time.Second, 5*time.Millisecond)

	// Stopping one observer leaves the other streaming.
	m.Stop("conn-a")
	assert.False(t, m.Active("conn-a"))
	assert.True(t, m.Active("conn-b"))

	before := b.count()
	require.Eventually(t, func() bool { return b.count() > before }, 2*time.Second, 5*time.Millisecond)
	m.Stop("conn-b")
}
