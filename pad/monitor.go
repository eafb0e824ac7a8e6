package pad

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Source is the platform input subsystem the monitor samples from. Index i of
// the returned slice is device slot i; the slice and everything it references
// may be reused by the source between calls.
type Source interface {
	Slots() []Slot

	// Rumble plays a haptic effect on the given slot, blocking until the
	// effect has finished or failed.
	Rumble(slot int, e Effect) error
}

// Effect describes one haptic (rumble) effect.
type Effect struct {
	Delay    time.Duration
	Duration time.Duration
	Strong   float64 // strong motor magnitude in [0, 1]
	Weak     float64 // weak motor magnitude in [0, 1]
}

// testEffect is the fixed effect played by TestVibration.
var testEffect = Effect{Duration: time.Second, Strong: 1, Weak: 0.5}

// Monitor owns the sampling pipeline: it selects the active slot, captures
// one snapshot per frame, detects rising button edges against the previous
// frame, and keeps the bounded press history. All sampling state is mutated
// only by Frame; readers get copies through the accessor methods.
type Monitor struct {
	src    Source
	labels Labels

	mu     sync.Mutex
	reg    registry
	prev   []bool // pressed state as of the previous frame, one active-device session only
	seed   bool   // next detection only establishes the session baseline
	log    pressLog
	cur    *Snapshot
	notice string

	vibrating atomic.Bool
}

func NewMonitor(src Source, labels Labels) *Monitor {
	return &Monitor{src: src, labels: labels, reg: newRegistry(), seed: true}
}

// Run invokes Frame at the given rate until ctx is cancelled. After each
// frame it calls onFrame, if non-nil, so a front end can redraw.
func (m *Monitor) Run(ctx context.Context, hz int, onFrame func()) {
	if hz <= 0 {
		hz = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Frame()
			if onFrame != nil {
				onFrame()
			}
		}
	}
}

// Frame runs one synchronous sampling tick. Nothing in here can fail: device
// absence yields a nil snapshot and short button or axis arrays read as
// neutral, so a bad frame never stops the next one.
func (m *Monitor) Frame() {
	m.mu.Lock()
	defer m.mu.Unlock()

	slots := m.src.Slots()
	if m.reg.selectActive(slots) {
		m.resetSession()
	}
	if m.reg.active == noSlot {
		m.cur = nil
		m.prev = m.prev[:0]
		return
	}
	m.cur = snapshot(&slots[m.reg.active])
	m.detect(m.cur)
}

// detect compares the snapshot's buttons against the previous frame and
// appends one press per rising edge, in ascending button index. The tracker
// grows lazily: devices may report more buttons than previously seen, and an
// unseen index counts as not pressed.
//
// The first detection of a session only records the baseline: a button
// already held when a device becomes active is not a press made during the
// session.
func (m *Monitor) detect(cur *Snapshot) {
	var batch []Press
	stamp := time.Now().Format("15:04:05.000")
	for i, b := range cur.Buttons {
		for len(m.prev) <= i {
			m.prev = append(m.prev, false)
		}
		if b.Pressed && !m.prev[i] && !m.seed {
			batch = append(batch, Press{
				ID:    uuid.NewString(),
				Label: m.labels.Label(i),
				Time:  stamp,
			})
		}
		m.prev[i] = b.Pressed
	}
	m.seed = false
	m.log.add(batch)
}

// resetSession discards all cross-frame state. History from one device
// session means nothing to the next.
func (m *Monitor) resetSession() {
	m.prev = m.prev[:0]
	m.seed = true
	m.log.clear()
	m.cur = nil
}

// OnConnect reacts to a device-connected notification for the given slot.
func (m *Monitor) OnConnect(slot int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reg.onConnect(slot) {
		m.resetSession()
	}
}

// OnDisconnect reacts to a device-disconnected notification for the given slot.
func (m *Monitor) OnDisconnect(slot int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reg.onDisconnect(slot) {
		m.resetSession()
	}
}

// Snapshot returns the most recent sample, or nil when no device is active.
// The returned value must not be modified.
func (m *Monitor) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Presses returns the press history, newest first.
func (m *Monitor) Presses() []Press {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log.list()
}

// ClearLog empties the press history. It does not touch the previous-press
// tracker, so held buttons do not re-trigger.
func (m *Monitor) ClearLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.clear()
}

// TestVibration plays the fixed test effect on the active slot in a detached
// goroutine. Its outcome only drives the Vibrating flag: failures are
// recorded as a notice for display and otherwise swallowed, never surfaced
// into the sampling path. A no-op while an effect is already running or when
// no device is active.
func (m *Monitor) TestVibration() {
	m.mu.Lock()
	slot := m.reg.active
	m.notice = ""
	m.mu.Unlock()
	if slot == noSlot {
		return
	}
	if !m.vibrating.CompareAndSwap(false, true) {
		return
	}
	go func() {
		if err := m.src.Rumble(slot, testEffect); err != nil {
			m.mu.Lock()
			m.notice = err.Error()
			m.mu.Unlock()
		}
		m.vibrating.Store(false)
	}()
}

// Label returns the display name for a button index, honoring any overrides
// the monitor was created with.
func (m *Monitor) Label(i int) string {
	return m.labels.Label(i)
}

// Vibrating reports whether a haptic effect is currently running.
func (m *Monitor) Vibrating() bool {
	return m.vibrating.Load()
}

// Notice returns the most recent informational message from a haptic
// request, such as the device not supporting rumble. Empty when the last
// request succeeded.
func (m *Monitor) Notice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notice
}
