// Package pad implements the controller sampling pipeline: selection of the
// active device slot, per-frame input snapshots, rising-edge press detection,
// and a bounded history of recent presses.
package pad

// Button is the state of a single button: a digital pressed flag plus an
// analog value in [0, 1] (meaningful chiefly for analog triggers).
type Button struct {
	Pressed bool
	Value   float64
}

// Snapshot is a normalized capture of one device's full input state at one
// instant. It is a pure value: a new Snapshot is produced every frame and its
// slices never alias source-owned memory.
type Snapshot struct {
	ID        string
	Timestamp uint64 // source-supplied, display only
	Buttons   []Button
	Axes      []float64
}

// Button returns the state of button i, or a released zero-value button when
// i is out of range. Devices may report fewer buttons than the standard
// layout expects.
func (s *Snapshot) Button(i int) Button {
	if s == nil || i < 0 || i >= len(s.Buttons) {
		return Button{}
	}
	return s.Buttons[i]
}

// Axis returns the position of axis i in [-1, 1], or 0 when i is out of range.
func (s *Snapshot) Axis(i int) float64 {
	if s == nil || i < 0 || i >= len(s.Axes) {
		return 0
	}
	return s.Axes[i]
}

// Slot is the raw per-slot state reported by a Source. A disconnected slot
// has Connected == false and no other meaningful fields.
type Slot struct {
	Connected bool
	ID        string
	Timestamp uint64
	Buttons   []Button
	Axes      []float64
}

// snapshot deep-copies a connected slot's state. The source may reuse its
// slices between frames, so retained snapshots must not alias them.
func snapshot(s *Slot) *Snapshot {
	snap := &Snapshot{
		ID:        s.ID,
		Timestamp: s.Timestamp,
		Buttons:   make([]Button, len(s.Buttons)),
		Axes:      make([]float64, len(s.Axes)),
	}
	copy(snap.Buttons, s.Buttons)
	copy(snap.Axes, s.Axes)
	return snap
}
