// Command gamepad-test displays the live state of a connected game
// controller together with a scrolling log of recent button presses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skyatgit/gamepad-test/joydev"
	"github.com/skyatgit/gamepad-test/pad"
)

func main() {
	log.SetPrefix("gamepad-test: ")
	log.SetFlags(0)

	var (
		guiFlag    = flag.Bool("gui", false, "render in a window instead of the terminal")
		hzFlag     = flag.Int("hz", 60, "sampling rate in frames per second")
		labelsFlag = flag.String("labels", "", "yaml `file` mapping button indices to names")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-gui] [-hz rate] [-labels file]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}

	var labels pad.Labels
	if *labelsFlag != "" {
		var err error
		if labels, err = pad.LoadLabels(*labelsFlag); err != nil {
			log.Fatal(err)
		}
	}

	hub, err := joydev.Open()
	if err != nil {
		log.Fatalf("opening input devices: %v", err)
	}
	defer hub.Close()

	mon := pad.NewMonitor(hub, labels)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-hub.Events():
				if ev.Connected {
					mon.OnConnect(ev.Slot)
				} else {
					mon.OnDisconnect(ev.Slot)
				}
			}
		}
	}()

	if *guiFlag {
		err = runGUI(ctx, mon, *hzFlag)
	} else {
		err = runTUI(ctx, mon, *hzFlag)
	}
	if err != nil {
		log.Fatal(err)
	}
}
