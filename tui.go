package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/skyatgit/gamepad-test/pad"
)

// tui renders the monitor's state in the terminal: a live state panel on the
// left, the press history on the right.
type tui struct {
	mon *pad.Monitor

	state   *tview.TextView
	presses *tview.TextView
	help    *tview.TextView
	app     *tview.Application
}

func runTUI(ctx context.Context, mon *pad.Monitor, hz int) error {
	t := &tui{
		mon: mon,
		state: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false),
		presses: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false),
		help: tview.NewTextView().
			SetTextAlign(tview.AlignCenter).
			SetText("c: clear log   v: test vibration   q: quit"),
	}
	t.state.SetBorder(true).SetTitle(" Controller ")
	t.presses.SetBorder(true).SetTitle(" Presses ")

	cols := tview.NewFlex().
		AddItem(t.state, 0, 2, false).
		AddItem(t.presses, 0, 1, false)
	rows := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(cols, 0, 1, false).
		AddItem(t.help, 1, 0, false)

	t.app = tview.NewApplication().SetRoot(rows, true)
	t.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			t.app.Stop()
			return nil
		}
		switch ev.Rune() {
		case 'c':
			t.mon.ClearLog()
			return nil
		case 'v':
			t.mon.TestVibration()
			return nil
		}
		return ev
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go mon.Run(ctx, hz, func() {
		t.app.QueueUpdateDraw(t.refresh)
	})

	return t.app.Run()
}

func (t *tui) refresh() {
	t.state.SetText(stateText(t.mon))
	t.presses.SetText(pressText(t.mon.Presses()))
}

func stateText(mon *pad.Monitor) string {
	snap := mon.Snapshot()
	if snap == nil {
		return "\n  No controller detected.\n\n  Connect a controller and press any button."
	}

	var b strings.Builder
	fmt.Fprintf(&b, " [::b]%s[::-]\n ts %d", snap.ID, snap.Timestamp)
	if mon.Vibrating() {
		b.WriteString("   [red]VIBRATING[-]")
	}
	b.WriteString("\n")
	if notice := mon.Notice(); notice != "" {
		fmt.Fprintf(&b, " [yellow]%s[-]\n", notice)
	}

	b.WriteString("\n Buttons\n")
	n := len(snap.Buttons)
	if n < pad.StdButtons {
		n = pad.StdButtons
	}
	for i := 0; i < n; i++ {
		btn := snap.Button(i)
		mark := "[gray]○[-]"
		if btn.Pressed {
			mark = "[green]●[-]"
		}
		fmt.Fprintf(&b, "  %s %-12s %4.2f", mark, mon.Label(i), btn.Value)
		if i%2 == 1 {
			b.WriteString("\n")
		}
	}
	if n%2 == 1 {
		b.WriteString("\n")
	}

	b.WriteString("\n Axes\n")
	n = len(snap.Axes)
	if n < pad.StdAxes {
		n = pad.StdAxes
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  %2d %s %+5.2f\n", i, gauge(snap.Axis(i), 21), snap.Axis(i))
	}
	return b.String()
}

func pressText(presses []pad.Press) string {
	var b strings.Builder
	for _, p := range presses {
		fmt.Fprintf(&b, " %s  %s\n", p.Time, p.Label)
	}
	return b.String()
}

// gauge renders a [-1, 1] value as a fixed-width bar with a center origin.
func gauge(v float64, width int) string {
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = '·'
	}
	cells[width/2] = '|'
	pos := int((v + 1) / 2 * float64(width-1))
	cells[pos] = '█'
	return "[" + string(cells) + "]"
}
