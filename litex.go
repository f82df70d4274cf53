// This file is part of LiteX-Go.
//
// LiteX-Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// LiteX-Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with LiteX-Go.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/disdi/litex/firmware/clic"
	"github.com/disdi/litex/firmware/pattern"
	"github.com/disdi/litex/firmware/processor"
	"github.com/disdi/litex/firmware/sampler"
	"github.com/disdi/litex/gui/sdlscreen"
	"github.com/disdi/litex/hardware"
	"github.com/disdi/litex/hardware/bus"
	"github.com/disdi/litex/hardware/bus/uartbridge"
	"github.com/disdi/litex/hardware/memorymap"
	"github.com/disdi/litex/logger"
	"github.com/disdi/litex/modalflag"
	"github.com/disdi/litex/statsview"
	"github.com/disdi/litex/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all).
	// It MUST ONLY be called as part of a larger loop from the main thread.
	Service()
}

// communication between the main() function and the launch() function. this
// is required because SDL requires window event handling (including
// creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with a reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a goroutine. further communication is through the
	// mainSync instance
	go launch(sync)

	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses the mainSync instance to
// request gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("CLIC", "VIDEO", "MODES", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "CLIC":
		err = clicSelfTest(md)

	case "VIDEO":
		err = video(md, sync)

	case "MODES":
		err = listModes(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// clicSelfTest runs the interrupt controller self-test against the simulated
// SoC and prints the report. Individual phase failures are reported, not
// fatal.
func clicSelfTest(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	soc := hardware.NewSoC()
	drv := clic.NewCLIC(soc.Bus, memorymap.CLICBase)
	st := clic.NewSelfTest(drv, soc)

	// the external enable/ack mechanism: the SoC step loop invokes the
	// handler, the handler acknowledges by clearing the pending bit
	soc.SetInterruptHandler(st.Handler)
	soc.SetGlobalInterruptEnable(true)

	report := st.Run()
	report.Write(md.Output)

	if !report.Passed() {
		fmt.Fprintln(md.Output, "self-test completed with failures")
	}

	return nil
}

// video programs a mode on the simulated SoC (or on a real board over the
// serial bridge), writes a test pattern and optionally scans the result out
// to an SDL window.
func video(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	mode := md.AddInt("mode", 0, "mode table index to start")
	display := md.AddBool("display", false, "scan the framebuffer out to a window")
	frames := md.AddInt("frames", 0, "with -display: frames to render (0 = until closed)")
	bridge := md.AddString("bridge", "", "serial device of a real board (disables simulation)")
	baud := md.AddInt("baud", 115200, "baud rate for -bridge")
	trace := md.AddString("trace", "", "record bus transactions to file")
	memvizFile := md.AddString("memviz", "", "dump the simulated SoC structure to a graphviz file")
	stats := md.AddBool("stats", false, "launch statsview server (requires the statsview build tag)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(md.Output)
		} else {
			fmt.Fprintln(md.Output, "stats server not available in this build")
		}
	}

	// select the bus the firmware runs against
	var b bus.Bus
	var soc *hardware.SoC

	if *bridge != "" {
		br, err := uartbridge.Open(*bridge, *baud)
		if err != nil {
			return err
		}
		defer br.Close()
		b = br
	} else {
		soc = hardware.NewSoC()
		b = soc.Bus
	}

	if *trace != "" {
		f, err := os.Create(*trace)
		if err != nil {
			return err
		}
		defer f.Close()
		b = bus.NewTrace(b, func(tr bus.Transaction) {
			fmt.Fprintln(f, tr.String())
		})
	}

	chA := sampler.New(b, memorymap.Sampler0Base, "Mixxeo ch.A")
	chB := sampler.New(b, memorymap.Sampler1Base, "Mixxeo ch.B")

	proc := processor.NewProcessor(b, processor.Config{
		Framebuffer: memorymap.FramebufferBase,
		ClockGen:    memorymap.ClockGenBase,
		EDID:        [processor.NumChannels]uint32{memorymap.EDID0Base, memorymap.EDID1Base},
		DMABase:     [2]uint32{memorymap.Framebuffer0, memorymap.Framebuffer1},
		Channels:    [processor.NumChannels]processor.Channel{chA, chB},
	})

	err = proc.Start(*mode)
	if err != nil {
		return err
	}

	m := processor.Modes[*mode]
	fmt.Fprintf(md.Output, "video mode set to %dx%d\n", m.HActive, m.VActive)

	pattern.ColorBars(b, memorymap.Framebuffer0, m.HActive, m.VActive)

	if soc != nil && *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		memviz.Map(f, soc)
		f.Close()
	}

	if !*display || soc == nil {
		// nothing to scan out: run a few service iterations so the channel
		// drivers see the new mode, then finish
		for i := 0; i < 16; i++ {
			if soc != nil {
				soc.Step()
			}
			proc.Service()
		}
		return nil
	}

	// create the scanout window on the main thread
	sync.creator <- func() (GuiCreator, error) {
		return sdlscreen.NewScreen(soc.Framebuffer)
	}

	var scr *sdlscreen.Screen
	select {
	case g := <-sync.creation:
		scr = g.(*sdlscreen.Screen)
	case err := <-sync.creationError:
		return err
	}

	tick := time.NewTicker(time.Second / 60)
	defer tick.Stop()

	for n := 0; *frames == 0 || n < *frames; n++ {
		select {
		case <-scr.Quit():
			return nil
		case <-tick.C:
		}

		soc.Step()
		proc.Service()

		err = scr.Render()
		if err != nil {
			return err
		}
	}

	return nil
}

// listModes prints the mode table. pure: no SoC is built.
func listModes(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	for i, desc := range processor.ListModes() {
		fmt.Fprintf(md.Output, "%d: %s\n", i, desc)
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", ver, rev)

	return nil
}
