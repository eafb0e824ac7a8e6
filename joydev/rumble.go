package joydev

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unsafe"

	"github.com/skyatgit/gamepad-test/pad"
)

// ErrRumbleUnsupported reports that the device has no force-feedback
// capability. Informational: the sampling path is unaffected.
var ErrRumbleUnsupported = errors.New("joydev: device does not support rumble")

// Force-feedback constants from linux/input.h. The js node cannot play
// effects; they go through the device's paired event node.
const (
	evFF     = 0x15
	ffRumble = 0x50

	eviocsFF  = 0x40304580 // _IOW('E', 0x80, struct ff_effect)
	eviocrmFF = 0x40044581 // _IOW('E', 0x81, int)
)

// ffEffect mirrors struct ff_effect for FF_RUMBLE on 64-bit Linux; trailing
// padding covers the rest of the effect union.
type ffEffect struct {
	Type            uint16
	ID              int16
	Direction       uint16
	TriggerButton   uint16
	TriggerInterval uint16
	ReplayLength    uint16 // milliseconds
	ReplayDelay     uint16 // milliseconds
	_               uint16
	StrongMagnitude uint16
	WeakMagnitude   uint16
	_               [28]byte
}

// inputEvent mirrors struct input_event on 64-bit Linux.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// Rumble implements pad.Source: it plays the effect on the given slot and
// blocks until it has run its course.
func (h *Hub) Rumble(slot int, e pad.Effect) error {
	h.mu.Lock()
	d := h.devices[slot]
	h.mu.Unlock()
	if d == nil {
		return fmt.Errorf("joydev: slot %d is not connected", slot)
	}
	return d.rumble(e)
}

func (d *device) rumble(e pad.Effect) error {
	node, err := d.eventNode()
	if err != nil {
		return ErrRumbleUnsupported
	}
	f, err := os.OpenFile(filepath.Join(inputDir, node), os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	eff := ffEffect{
		Type:            ffRumble,
		ID:              -1, // kernel assigns an id on upload
		ReplayLength:    uint16(e.Duration / time.Millisecond),
		ReplayDelay:     uint16(e.Delay / time.Millisecond),
		StrongMagnitude: magnitude(e.Strong),
		WeakMagnitude:   magnitude(e.Weak),
	}
	if err := ioctl(f, eviocsFF, unsafe.Pointer(&eff)); err != nil {
		return ErrRumbleUnsupported
	}
	defer func() {
		id := int32(eff.ID)
		ioctl(f, eviocrmFF, unsafe.Pointer(&id))
	}()

	play := inputEvent{Type: evFF, Code: uint16(eff.ID), Value: 1}
	if err := binary.Write(f, binary.LittleEndian, &play); err != nil {
		return err
	}
	time.Sleep(e.Delay + e.Duration)
	stop := inputEvent{Type: evFF, Code: uint16(eff.ID), Value: 0}
	return binary.Write(f, binary.LittleEndian, &stop)
}

// eventNode finds the event node sharing this joystick's underlying device
// via sysfs.
func (d *device) eventNode() (string, error) {
	entries, err := os.ReadDir(filepath.Join("/sys/class/input", d.node, "device"))
	if err != nil {
		return "", err
	}
	for _, ent := range entries {
		if strings.HasPrefix(ent.Name(), "event") {
			return ent.Name(), nil
		}
	}
	return "", fmt.Errorf("joydev: no event node for %s", d.node)
}

// magnitude converts a [0, 1] magnitude to the kernel's 16-bit range.
func magnitude(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v * 0xffff)
}
