package joydev

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/howeyc/fsnotify"

	"github.com/skyatgit/gamepad-test/pad"
)

// Event notifies a consumer that a device slot connected or disconnected.
type Event struct {
	Slot      int
	ID        string
	Connected bool
}

// Hub tracks every joystick node under /dev/input, keyed by its js number,
// and implements pad.Source over them. Hotplug is observed by watching the
// directory for node creation and deletion.
type Hub struct {
	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}

	mu      sync.Mutex
	devices map[int]*device
}

// Open scans for already-present joystick nodes and starts watching for
// hotplug changes.
func Open() (*Hub, error) {
	h := &Hub{
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
		devices: make(map[int]*device),
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(inputDir); err != nil {
		watcher.Close()
		return nil, err
	}
	h.watcher = watcher

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	for _, ent := range entries {
		if slot, ok := slotNumber(ent.Name()); ok {
			h.connect(slot, ent.Name())
		}
	}

	go h.watch()
	return h, nil
}

// slotNumber extracts the slot index from a joystick node name ("js3" -> 3).
func slotNumber(name string) (int, bool) {
	num, ok := strings.CutPrefix(name, "js")
	if !ok || num == "" {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (h *Hub) watch() {
	for {
		select {
		case <-h.done:
			return
		case ev, ok := <-h.watcher.Event:
			if !ok {
				return
			}
			slot, isJS := slotNumber(filepath.Base(ev.Name))
			if !isJS {
				continue
			}
			switch {
			case ev.IsCreate():
				h.connect(slot, filepath.Base(ev.Name))
			case ev.IsDelete():
				h.disconnect(slot)
			}
		case err := <-h.watcher.Error:
			log.Printf("joydev: watcher: %v", err)
		}
	}
}

func (h *Hub) connect(slot int, node string) {
	d, err := openDevice(node)
	if err != nil {
		log.Printf("joydev: %s: %v", node, err)
		return
	}
	h.mu.Lock()
	if old := h.devices[slot]; old != nil {
		old.close()
	}
	h.devices[slot] = d
	h.mu.Unlock()
	h.notify(Event{Slot: slot, ID: d.name, Connected: true})
}

func (h *Hub) disconnect(slot int) {
	h.mu.Lock()
	d := h.devices[slot]
	delete(h.devices, slot)
	h.mu.Unlock()
	if d == nil {
		return
	}
	d.close()
	h.notify(Event{Slot: slot, ID: d.name, Connected: false})
}

// notify never blocks the watch loop; a consumer that has fallen this far
// behind will resynchronize from Slots on its next frame anyway.
func (h *Hub) notify(ev Event) {
	select {
	case h.events <- ev:
	default:
	}
}

// Events reports connect and disconnect notifications.
func (h *Hub) Events() <-chan Event {
	return h.events
}

// Slots implements pad.Source. Slot i of the result corresponds to node jsN
// with N == i; slots with no device read as disconnected.
func (h *Hub) Slots() []pad.Slot {
	h.mu.Lock()
	defer h.mu.Unlock()
	max := -1
	for slot := range h.devices {
		if slot > max {
			max = slot
		}
	}
	slots := make([]pad.Slot, max+1)
	for slot, d := range h.devices {
		slots[slot] = d.slot()
	}
	return slots
}

// Close stops the watcher and releases every open device.
func (h *Hub) Close() {
	close(h.done)
	h.watcher.Close()
	h.mu.Lock()
	defer h.mu.Unlock()
	for slot, d := range h.devices {
		d.close()
		delete(h.devices, slot)
	}
}
