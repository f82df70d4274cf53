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

// Package processor sequences video mode changes for the mixer: it programs
// the clock generator, the framebuffer timing registers and the EDID memory
// of the two DVI sampler channels, quiescing both channels around the
// change so a downstream consumer never latches a half-programmed state.
package processor

import (
	"github.com/disdi/litex/curated"
	"github.com/disdi/litex/firmware/edid"
	"github.com/disdi/litex/hardware/bus"
	"github.com/disdi/litex/hardware/clockgen"
	"github.com/disdi/litex/hardware/framebuffer"
	"github.com/disdi/litex/logger"
)

// NumChannels is the number of DVI sampler channels. Exactly two; the mixer
// has no other topology.
const NumChannels = 2

// identification embedded in the generated EDID blocks.
const (
	edidVendor  = "OHW"
	edidProduct = "MX"
	edidYear    = 2013
)

// error patterns for the mode sequencer.
const (
	InvalidMode = "processor: no mode %d in mode table"
	Timeout     = "processor: timeout %v"
)

// defaultPollBudget bounds every hardware status poll. An exhausted budget
// is a Timeout error naming the awaited condition, never a hang.
const defaultPollBudget = 10000

// Channel is the call contract consumed for each DVI sampler channel. The
// channel's own video initialisation and periodic servicing are owned by the
// channel driver, not reimplemented here.
type Channel interface {
	// Name distinguishes the channel in its EDID block's monitor name
	Name() string

	// InitVideo tells the channel driver the new active resolution
	InitVideo(hActive int, vActive int)

	// Service advances the channel driver's own polling logic. must never
	// block.
	Service()

	// EnableHotplug toggles hot-plug detect signaling towards the source
	EnableHotplug(enable bool)
}

// Config collects the addresses and collaborators a Processor needs. All
// fields are required.
type Config struct {
	// CSR base addresses
	Framebuffer uint32
	ClockGen    uint32

	// EDID memory window base address per channel
	EDID [NumChannels]uint32

	// framebuffer DMA base address per buffer of the double-buffer pair
	DMABase [2]uint32

	// the channel drivers
	Channels [NumChannels]Channel
}

// Processor is the video mode sequencer. Between Start() calls the mixer is
// implicitly stopped or running; a mode change must never overlap channel
// activity, which Start() guarantees by quiescing both channels before
// touching a register.
type Processor struct {
	bus bus.Bus
	cfg Config

	pollBudget int
}

// NewProcessor is the preferred method of initialisation for Processor.
func NewProcessor(b bus.Bus, cfg Config) *Processor {
	return &Processor{
		bus:        b,
		cfg:        cfg,
		pollBudget: defaultPollBudget,
	}
}

// Start the mixer in the given mode. The sequence quiesces both channels,
// programs the framebuffer timing and DMA registers, reprograms the clock
// generator, rewrites both EDID memory windows and brings the channels back
// up at the new resolution.
//
// The clock generator protocol ordering is mandatory: the divider is latched
// strictly before the multiplier and both strictly before the go pulse.
func (p *Processor) Start(mode int) error {
	if mode < 0 || mode >= len(Modes) {
		return curated.Errorf(InvalidMode, mode)
	}
	m := Modes[mode]

	// quiesce: no output and no hot-plug signaling while registers are in
	// flux
	p.bus.Write32(p.cfg.Framebuffer+framebuffer.RegEnable, 0)
	for _, ch := range p.cfg.Channels {
		ch.EnableHotplug(false)
	}

	if err := p.setMode(m); err != nil {
		return err
	}
	if err := p.setEDID(m); err != nil {
		return err
	}

	for _, ch := range p.cfg.Channels {
		ch.InitVideo(m.HActive, m.VActive)
	}

	p.bus.Write32(p.cfg.Framebuffer+framebuffer.RegEnable, 1)
	for _, ch := range p.cfg.Channels {
		ch.EnableHotplug(true)
	}

	logger.Logf("processor", "video mode set to %dx%d", m.HActive, m.VActive)

	return nil
}

// Service the two channels. Invoked periodically by the driver loop; never
// blocks.
func (p *Processor) Service() {
	for _, ch := range p.cfg.Channels {
		ch.Service()
	}
}

// setMode programs the framebuffer timing registers, the DMA transfer
// lengths and the pixel clock.
func (p *Processor) setMode(m edid.Timing) error {
	clockM, clockD, err := clockMD(RefClock, m.PixelClock)
	if err != nil {
		return err
	}

	fb := p.cfg.Framebuffer

	// sync boundaries are derived identically on both axes: sync start =
	// active + sync offset, sync end = sync start + sync width, scan =
	// active + blanking
	p.bus.Write32(fb+framebuffer.RegHRes, uint32(m.HActive))
	p.bus.Write32(fb+framebuffer.RegHSyncStart, uint32(m.HActive+m.HSyncOffset))
	p.bus.Write32(fb+framebuffer.RegHSyncEnd, uint32(m.HActive+m.HSyncOffset+m.HSyncWidth))
	p.bus.Write32(fb+framebuffer.RegHScan, uint32(m.HActive+m.HBlanking))
	p.bus.Write32(fb+framebuffer.RegVRes, uint32(m.VActive))
	p.bus.Write32(fb+framebuffer.RegVSyncStart, uint32(m.VActive+m.VSyncOffset))
	p.bus.Write32(fb+framebuffer.RegVSyncEnd, uint32(m.VActive+m.VSyncOffset+m.VSyncWidth))
	p.bus.Write32(fb+framebuffer.RegVScan, uint32(m.VActive+m.VBlanking))

	// both buffers of the double-buffer pair transfer one full frame at 4
	// bytes per pixel
	length := uint32(m.HActive * m.VActive * framebuffer.PixelDepth)
	p.bus.Write32(fb+framebuffer.RegBase0, p.cfg.DMABase[0])
	p.bus.Write32(fb+framebuffer.RegLength0, length)
	p.bus.Write32(fb+framebuffer.RegBase1, p.cfg.DMABase[1])
	p.bus.Write32(fb+framebuffer.RegLength1, length)

	// divider before multiplier, both before go
	if err := p.clkgenWrite(clockgen.CmdDivider, uint8(clockD-1)); err != nil {
		return err
	}
	if err := p.clkgenWrite(clockgen.CmdMultiplier, uint8(clockM-1)); err != nil {
		return err
	}
	p.bus.Write32(p.cfg.ClockGen+clockgen.RegSendGo, 1)

	if err := p.pollStatus(clockgen.StatusProgDone, clockgen.StatusProgDone, "waiting for PROGDONE"); err != nil {
		return err
	}
	if err := p.pollStatus(clockgen.StatusLocked, clockgen.StatusLocked, "waiting for LOCKED"); err != nil {
		return err
	}

	return nil
}

// clkgenWrite packs a payload and 2-bit command into one cmd_data word,
// pulses the send strobe and waits for the busy flag to clear.
func (p *Processor) clkgenWrite(cmd uint32, data uint8) error {
	word := uint32(data)<<2 | cmd
	p.bus.Write32(p.cfg.ClockGen+clockgen.RegCmdData, word)
	p.bus.Write32(p.cfg.ClockGen+clockgen.RegSendCmdData, 1)
	return p.pollStatus(clockgen.StatusBusy, 0, "waiting for BUSY clear")
}

// pollStatus reads the clock generator status register until the masked
// flags equal want, returning a Timeout error when the poll budget runs out.
func (p *Processor) pollStatus(mask uint32, want uint32, condition string) error {
	for i := 0; i < p.pollBudget; i++ {
		if p.bus.Read32(p.cfg.ClockGen+clockgen.RegStatus)&mask == want {
			return nil
		}
	}
	return curated.Errorf(Timeout, condition)
}

// setEDID generates one EDID block per channel, identical except for the
// channel name, and copies each byte-by-byte into the channel's memory
// window: one byte per 32-bit word slot.
func (p *Processor) setEDID(m edid.Timing) error {
	for i, ch := range p.cfg.Channels {
		block, err := edid.Generate(edidVendor, edidProduct, edidYear, ch.Name(), m)
		if err != nil {
			return err
		}
		for j, b := range block {
			p.bus.Write32(p.cfg.EDID[i]+uint32(4*j), uint32(b))
		}
	}
	return nil
}
