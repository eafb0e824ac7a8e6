package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/skyatgit/gamepad-test/pad"
)

const guiWidth, guiHeight = 520, 420

var (
	guiBack    = color.RGBA{0x1a, 0x1a, 0x22, 0xff}
	guiDim     = color.RGBA{0x3a, 0x3a, 0x46, 0xff}
	guiLit     = color.RGBA{0x3c, 0xb4, 0x4b, 0xff}
	guiText    = color.RGBA{0xd8, 0xd8, 0xd8, 0xff}
	guiWarn    = color.RGBA{0xe6, 0xc2, 0x29, 0xff}
	guiVibrate = color.RGBA{0xd4, 0x3a, 0x3a, 0xff}
)

// runGUI renders the monitor's state in a window. The monitor's frame loop
// pumps redraw events into the window's event queue, the same way the
// sampling tick drives the terminal front end.
func runGUI(ctx context.Context, mon *pad.Monitor, hz int) error {
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "gamepad-test",
			Width:  guiWidth,
			Height: guiHeight,
		})
		if err != nil {
			log.Fatalf("gui: %v", err)
		}
		defer w.Release()

		type frame struct{}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go mon.Run(ctx, hz, func() { w.Send(frame{}) })

		var (
			buf screen.Buffer
			tex screen.Texture
			sz  size.Event
		)
		defer func() {
			if buf != nil {
				buf.Release()
			}
			if tex != nil {
				tex.Release()
			}
		}()

		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}

			case key.Event:
				if e.Direction != key.DirPress {
					break
				}
				switch e.Code {
				case key.CodeQ, key.CodeEscape:
					return
				case key.CodeC:
					mon.ClearLog()
				case key.CodeV:
					mon.TestVibration()
				}

			case frame:
				if buf == nil {
					p := image.Point{guiWidth, guiHeight}
					if buf, err = s.NewBuffer(p); err != nil {
						log.Fatalf("gui: %v", err)
					}
					if tex, err = s.NewTexture(p); err != nil {
						log.Fatalf("gui: %v", err)
					}
				}
				drawState(buf.RGBA(), mon)
				tex.Upload(image.Point{}, buf, buf.Bounds())
				w.Scale(sz.Bounds(), tex, tex.Bounds(), draw.Src, nil)
				w.Publish()

			case paint.Event:

			case error:
				log.Print(e)
			}
		}
	})
	return nil
}

func drawState(m *image.RGBA, mon *pad.Monitor) {
	draw.Draw(m, m.Bounds(), image.NewUniform(guiBack), image.Point{}, draw.Src)

	snap := mon.Snapshot()
	if snap == nil {
		drawText(m, 16, 32, guiText, "No controller detected.")
		drawText(m, 16, 48, guiText, "Connect a controller and press any button.")
		return
	}

	drawText(m, 16, 24, guiText, snap.ID)
	drawText(m, 16, 40, guiText, fmt.Sprintf("ts %d", snap.Timestamp))
	if mon.Vibrating() {
		drawText(m, guiWidth-100, 24, guiVibrate, "VIBRATING")
	}
	if notice := mon.Notice(); notice != "" {
		drawText(m, 16, 56, guiWarn, notice)
	}

	// Button grid: one cell per button, filled in proportion to the analog
	// value so triggers read as partial bars.
	n := len(snap.Buttons)
	if n < pad.StdButtons {
		n = pad.StdButtons
	}
	const (
		cellW, cellH = 76, 26
		perRow       = 6
		gridTop      = 72
	)
	for i := 0; i < n; i++ {
		x := 16 + (i%perRow)*(cellW+8)
		y := gridTop + (i/perRow)*(cellH+14)
		btn := snap.Button(i)
		fillRect(m, image.Rect(x, y, x+cellW, y+cellH), guiDim)
		if btn.Pressed || btn.Value > 0 {
			v := btn.Value
			if btn.Pressed && v == 0 {
				v = 1
			}
			fillRect(m, image.Rect(x, y, x+int(v*cellW), y+cellH), guiLit)
		}
		drawText(m, x+4, y+cellH+11, guiText, mon.Label(i))
	}

	// Sticks: axes 0,1 and 2,3 as crosshair boxes, extra axes as bars.
	rows := (n + perRow - 1) / perRow
	top := gridTop + rows*(cellH+14) + 16
	const boxSize = 90
	for stick := 0; stick < 2; stick++ {
		x0 := 16 + stick*(boxSize+24)
		fillRect(m, image.Rect(x0, top, x0+boxSize, top+boxSize), guiDim)
		px := x0 + int((snap.Axis(stick*2)+1)/2*(boxSize-5))
		py := top + int((snap.Axis(stick*2+1)+1)/2*(boxSize-5))
		fillRect(m, image.Rect(px, py, px+5, py+5), guiLit)
	}
	for i := pad.StdAxes; i < len(snap.Axes); i++ {
		y := top + (i-pad.StdAxes)*18
		x0 := 16 + 2*(boxSize+24)
		fillRect(m, image.Rect(x0, y, x0+120, y+10), guiDim)
		px := x0 + int((snap.Axis(i)+1)/2*115)
		fillRect(m, image.Rect(px, y, px+5, y+10), guiLit)
	}
}

func fillRect(m *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(m, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(m *image.RGBA, x, y int, c color.Color, s string) {
	d := font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
