// Package joydev reads game controllers through the Linux joystick API
// (/dev/input/js*) and exposes them as a pad.Source.
package joydev

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/skyatgit/gamepad-test/pad"
)

const inputDir = "/dev/input"

// Joystick ioctls from linux/joystick.h.
const (
	jsiocgName    = 0x80006a13 + (128 << 16) // JSIOCGNAME(128)
	jsiocgAxes    = 0x80016a11
	jsiocgButtons = 0x80016a12
)

// js_event types.
const (
	eventButton = 0x01
	eventAxis   = 0x02
	eventInit   = 0x80 // OR'd into the type of synthetic initial-state events
)

// event mirrors the kernel's 8-byte js_event record.
type event struct {
	Time   uint32 // event timestamp in milliseconds
	Value  int16
	Type   uint8
	Number uint8
}

// device is one open joystick node. Its state is written by the reader
// goroutine and copied out by slot().
type device struct {
	node string // e.g. "js0"
	name string
	f    *os.File

	mu      sync.Mutex
	time    uint32
	buttons []pad.Button
	axes    []float64
}

func openDevice(node string) (*device, error) {
	f, err := openRetry(filepath.Join(inputDir, node))
	if err != nil {
		return nil, err
	}
	d := &device{node: node, f: f}
	var nButtons, nAxes uint8
	if err := ioctlString(f, jsiocgName, &d.name); err != nil {
		f.Close()
		return nil, err
	}
	if err := ioctl(f, jsiocgButtons, unsafe.Pointer(&nButtons)); err != nil {
		f.Close()
		return nil, err
	}
	if err := ioctl(f, jsiocgAxes, unsafe.Pointer(&nAxes)); err != nil {
		f.Close()
		return nil, err
	}
	d.buttons = make([]pad.Button, nButtons)
	d.axes = make([]float64, nAxes)
	go d.read()
	return d, nil
}

// openRetry retries on permission errors: udev may not have adjusted the
// node's mode yet when the create notification arrives.
func openRetry(path string) (*os.File, error) {
	var (
		f   *os.File
		err error
	)
	for i := 0; i < 5; i++ {
		if f, err = os.Open(path); err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrPermission) {
			return nil, err
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil, err
}

// read decodes js_event records until the node is closed or removed.
func (d *device) read() {
	for {
		var e event
		if err := binary.Read(d.f, binary.LittleEndian, &e); err != nil {
			return
		}
		d.apply(e)
	}
}

// apply folds one event into the device state. Indices beyond the counts
// reported at open time grow the state lazily. Initial-state events are
// applied like any other: the sampling core establishes its own baseline per
// session, so seeding held buttons here causes no phantom presses.
func (d *device) apply(e event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.time = e.Time
	i := int(e.Number)
	switch e.Type &^ eventInit {
	case eventButton:
		for len(d.buttons) <= i {
			d.buttons = append(d.buttons, pad.Button{})
		}
		if e.Value != 0 {
			d.buttons[i] = pad.Button{Pressed: true, Value: 1}
		} else {
			d.buttons[i] = pad.Button{}
		}
	case eventAxis:
		for len(d.axes) <= i {
			d.axes = append(d.axes, 0)
		}
		d.axes[i] = normalizeAxis(e.Value)
	}
}

// normalizeAxis converts a raw axis value (-32768..32767) to [-1, 1].
func normalizeAxis(raw int16) float64 {
	v := float64(raw) / 32767
	if v < -1 {
		v = -1
	}
	return v
}

// slot copies the current state out as a connected pad.Slot.
func (d *device) slot() pad.Slot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := pad.Slot{
		Connected: true,
		ID:        d.name,
		Timestamp: uint64(d.time),
		Buttons:   make([]pad.Button, len(d.buttons)),
		Axes:      make([]float64, len(d.axes)),
	}
	copy(s.Buttons, d.buttons)
	copy(s.Axes, d.axes)
	return s
}

func (d *device) close() {
	d.f.Close()
}

func ioctl(f *os.File, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlString(f *os.File, req uintptr, dest *string) error {
	buf := make([]byte, 128)
	if err := ioctl(f, req, unsafe.Pointer(&buf[0])); err != nil {
		return err
	}
	n := 0
	for _, b := range buf {
		if b == 0 {
			break
		}
		n++
	}
	*dest = string(buf[:n])
	return nil
}
