package pad

// Press records one detected button press. It is immutable once created.
type Press struct {
	ID    string // unique, even among presses within one millisecond
	Label string
	Time  string // wall clock, 15:04:05.000
}

// logCap bounds the press history; older entries are discarded silently.
const logCap = 50

// pressLog is a bounded newest-first history of presses.
type pressLog struct {
	entries []Press
}

// add prepends one frame's batch of presses, keeping the batch's own order,
// and truncates the history to logCap from the tail.
func (l *pressLog) add(batch []Press) {
	if len(batch) == 0 {
		return
	}
	l.entries = append(batch, l.entries...)
	if len(l.entries) > logCap {
		l.entries = l.entries[:logCap]
	}
}

func (l *pressLog) clear() {
	l.entries = nil
}

func (l *pressLog) list() []Press {
	out := make([]Press, len(l.entries))
	copy(out, l.entries)
	return out
}
