package pad

// noSlot marks the absence of an active device slot.
const noSlot = -1

// registry tracks which of the source's slots is the active one. At most one
// slot is active at any time, and only while it is connected.
type registry struct {
	active int
}

func newRegistry() registry {
	return registry{active: noSlot}
}

// selectActive keeps the current slot if it is still connected, otherwise
// picks the first connected slot in ascending index order, otherwise none.
// It reports whether the active slot changed, including to or from none.
func (r *registry) selectActive(slots []Slot) (changed bool) {
	if r.active != noSlot && r.active < len(slots) && slots[r.active].Connected {
		return false
	}
	prev := r.active
	r.active = noSlot
	for i := range slots {
		if slots[i].Connected {
			r.active = i
			break
		}
	}
	return r.active != prev
}

// onConnect adopts a newly connected slot only when none is active;
// first-connected-wins until that slot disconnects.
func (r *registry) onConnect(slot int) (changed bool) {
	if r.active != noSlot || slot < 0 {
		return false
	}
	r.active = slot
	return true
}

// onDisconnect clears the active slot if it is the one disconnecting,
// forcing re-selection on the next frame.
func (r *registry) onDisconnect(slot int) (changed bool) {
	if r.active != slot {
		return false
	}
	r.active = noSlot
	return true
}
