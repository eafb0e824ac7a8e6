package joydev

import (
	"testing"

	"github.com/skyatgit/gamepad-test/pad"
)

func TestApplyEvents(t *testing.T) {
	d := &device{
		name:    "Test Pad",
		buttons: make([]pad.Button, 2),
		axes:    make([]float64, 2),
	}

	d.apply(event{Time: 10, Type: eventButton, Number: 0, Value: 1})
	d.apply(event{Time: 11, Type: eventAxis, Number: 1, Value: 32767})
	s := d.slot()
	if !s.Connected || s.ID != "Test Pad" || s.Timestamp != 11 {
		t.Fatalf("slot = %+v", s)
	}
	if !s.Buttons[0].Pressed || s.Buttons[0].Value != 1 {
		t.Errorf("button 0 = %+v, want pressed", s.Buttons[0])
	}
	if s.Axes[1] != 1 {
		t.Errorf("axis 1 = %v, want 1", s.Axes[1])
	}

	d.apply(event{Time: 12, Type: eventButton, Number: 0, Value: 0})
	if s = d.slot(); s.Buttons[0].Pressed {
		t.Errorf("button 0 still pressed after release")
	}

	// Initial-state events apply like any other.
	d.apply(event{Time: 13, Type: eventButton | eventInit, Number: 1, Value: 1})
	if s = d.slot(); !s.Buttons[1].Pressed {
		t.Errorf("init event for button 1 not applied")
	}
}

func TestApplyGrowsState(t *testing.T) {
	d := &device{}
	d.apply(event{Type: eventButton, Number: 4, Value: 1})
	d.apply(event{Type: eventAxis, Number: 5, Value: -32768})
	s := d.slot()
	if len(s.Buttons) != 5 || !s.Buttons[4].Pressed {
		t.Errorf("buttons = %+v, want index 4 pressed", s.Buttons)
	}
	if len(s.Axes) != 6 || s.Axes[5] != -1 {
		t.Errorf("axes = %+v, want index 5 == -1", s.Axes)
	}
}

func TestSlotCopies(t *testing.T) {
	d := &device{buttons: make([]pad.Button, 1), axes: make([]float64, 1)}
	s := d.slot()
	d.apply(event{Type: eventButton, Number: 0, Value: 1})
	if s.Buttons[0].Pressed {
		t.Error("slot aliases device state")
	}
}

func TestNormalizeAxis(t *testing.T) {
	for _, c := range []struct {
		raw  int16
		want float64
	}{
		{0, 0},
		{32767, 1},
		{-32767, -1},
		{-32768, -1}, // clamped
	} {
		if got := normalizeAxis(c.raw); got != c.want {
			t.Errorf("normalizeAxis(%d) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestSlotNumber(t *testing.T) {
	for _, c := range []struct {
		name string
		slot int
		ok   bool
	}{
		{"js0", 0, true},
		{"js12", 12, true},
		{"js", 0, false},
		{"jsx", 0, false},
		{"event3", 0, false},
		{"mouse0", 0, false},
		{"js-1", 0, false},
	} {
		slot, ok := slotNumber(c.name)
		if slot != c.slot || ok != c.ok {
			t.Errorf("slotNumber(%q) = %d, %v; want %d, %v", c.name, slot, ok, c.slot, c.ok)
		}
	}
}

func TestMagnitude(t *testing.T) {
	for _, c := range []struct {
		v    float64
		want uint16
	}{
		{0, 0},
		{-0.5, 0},
		{1, 0xffff},
		{1.5, 0xffff},
		{0.5, 0x7fff},
	} {
		if got := magnitude(c.v); got != c.want {
			t.Errorf("magnitude(%v) = %#x, want %#x", c.v, got, c.want)
		}
	}
}
