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

package processor_test

import (
	"testing"

	"github.com/disdi/litex/curated"
	"github.com/disdi/litex/firmware/processor"
	"github.com/disdi/litex/firmware/sampler"
	"github.com/disdi/litex/hardware"
	"github.com/disdi/litex/hardware/bus"
	"github.com/disdi/litex/hardware/clockgen"
	"github.com/disdi/litex/hardware/dvisampler"
	"github.com/disdi/litex/hardware/framebuffer"
	"github.com/disdi/litex/hardware/memorymap"
	"github.com/disdi/litex/test"
)

// newSystem assembles a SoC and a processor driving it, optionally through a
// trace wrapper.
func newSystem(record func(bus.Transaction)) (*hardware.SoC, *processor.Processor) {
	soc := hardware.NewSoC()

	var b bus.Bus = soc.Bus
	if record != nil {
		b = bus.NewTrace(soc.Bus, record)
	}

	cfg := processor.Config{
		Framebuffer: memorymap.FramebufferBase,
		ClockGen:    memorymap.ClockGenBase,
		EDID:        [processor.NumChannels]uint32{memorymap.EDID0Base, memorymap.EDID1Base},
		DMABase:     [2]uint32{memorymap.Framebuffer0, memorymap.Framebuffer1},
		Channels: [processor.NumChannels]processor.Channel{
			sampler.New(b, memorymap.Sampler0Base, "Mixxeo ch.A"),
			sampler.New(b, memorymap.Sampler1Base, "Mixxeo ch.B"),
		},
	}

	return soc, processor.NewProcessor(b, cfg)
}

func TestListModes(t *testing.T) {
	desc := processor.ListModes()
	test.DemandEquality(t, len(desc), 4)
	test.ExpectEquality(t, desc[0], "1024x768 @60Hz")
	test.ExpectEquality(t, desc[1], "1280x720 @60Hz")
	test.ExpectEquality(t, desc[2], "640x480 @59Hz")
	test.ExpectEquality(t, desc[3], "800x600 @60Hz")
}

func TestStart_invalidMode(t *testing.T) {
	_, vp := newSystem(nil)

	err := vp.Start(-1)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, processor.InvalidMode))

	err = vp.Start(len(processor.Modes))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, processor.InvalidMode))
}

func TestStart_programsClockGenerator(t *testing.T) {
	// the programming registers carry value-1. mode 0 and 3 are exact
	// ratios of the 50MHz reference; mode 1 and 2 are best approximations
	modes := []struct {
		mode       int
		divider    uint8
		multiplier uint8
	}{
		{0, 9, 12},    // 65.00MHz = 50 * 13/10
		{1, 166, 247}, // 74.25MHz ~ 50 * 248/167
		{2, 146, 73},  // 25.17MHz ~ 50 * 74/147
		{3, 4, 3},     // 40.00MHz = 50 * 4/5
	}

	for _, m := range modes {
		soc, vp := newSystem(nil)

		err := vp.Start(m.mode)
		test.DemandSuccess(t, err, "mode", m.mode)

		test.ExpectEquality(t, soc.ClockGen.Divider(), m.divider, "mode", m.mode)
		test.ExpectEquality(t, soc.ClockGen.Multiplier(), m.multiplier, "mode", m.mode)
		test.ExpectSuccess(t, soc.ClockGen.Locked(), "mode", m.mode)
	}
}

func TestStart_programsFramebuffer(t *testing.T) {
	soc, vp := newSystem(nil)

	err := vp.Start(0)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, soc.Framebuffer.Enabled())

	hres, vres := soc.Framebuffer.Resolution()
	test.ExpectEquality(t, hres, 1024)
	test.ExpectEquality(t, vres, 768)

	// one full frame at 4 bytes per pixel, for both buffers of the pair
	test.ExpectEquality(t, soc.Framebuffer.DMALength(0), uint32(3145728))
	test.ExpectEquality(t, soc.Framebuffer.DMALength(1), uint32(3145728))

	test.ExpectSuccess(t, soc.Sampler0.HPDEnabled())
	test.ExpectSuccess(t, soc.Sampler1.HPDEnabled())

	// a second start at the 720p mode reprograms everything
	err = vp.Start(1)
	test.DemandSuccess(t, err)

	hres, vres = soc.Framebuffer.Resolution()
	test.ExpectEquality(t, hres, 1280)
	test.ExpectEquality(t, vres, 720)
	test.ExpectEquality(t, soc.Framebuffer.DMALength(0), uint32(3686400))
}

func TestStart_writesEDID(t *testing.T) {
	soc, vp := newSystem(nil)

	err := vp.Start(0)
	test.DemandSuccess(t, err)

	a := soc.Sampler0.EDIDBytes()
	b := soc.Sampler1.EDIDBytes()

	// well formed blocks: EDID header and zero checksum
	header := []uint8{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}
	for i, v := range header {
		test.ExpectEquality(t, a[i], v, "channel A header byte", i)
		test.ExpectEquality(t, b[i], v, "channel B header byte", i)
	}

	var sumA, sumB uint8
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	test.ExpectEquality(t, sumA, uint8(0), "channel A checksum")
	test.ExpectEquality(t, sumB, uint8(0), "channel B checksum")

	// the channels differ in their monitor name
	test.ExpectInequality(t, a, b)
}

func TestStart_clockCommandOrdering(t *testing.T) {
	var writes []bus.Transaction
	_, vp := newSystem(func(tr bus.Transaction) {
		if tr.Write {
			writes = append(writes, tr)
		}
	})

	err := vp.Start(0)
	test.DemandSuccess(t, err)

	// pick the clock generator command writes out of the full sequence
	var cmds []bus.Transaction
	for _, w := range writes {
		switch w.Address {
		case memorymap.ClockGenBase + clockgen.RegCmdData,
			memorymap.ClockGenBase + clockgen.RegSendCmdData,
			memorymap.ClockGenBase + clockgen.RegSendGo:
			cmds = append(cmds, w)
		}
	}

	// divider latch, multiplier latch, go pulse. in that order
	test.DemandEquality(t, len(cmds), 5)
	test.ExpectEquality(t, cmds[0].Address, memorymap.ClockGenBase+clockgen.RegCmdData)
	test.ExpectEquality(t, cmds[0].Data, uint32(9)<<2|clockgen.CmdDivider)
	test.ExpectEquality(t, cmds[1].Address, memorymap.ClockGenBase+clockgen.RegSendCmdData)
	test.ExpectEquality(t, cmds[2].Address, memorymap.ClockGenBase+clockgen.RegCmdData)
	test.ExpectEquality(t, cmds[2].Data, uint32(12)<<2|clockgen.CmdMultiplier)
	test.ExpectEquality(t, cmds[3].Address, memorymap.ClockGenBase+clockgen.RegSendCmdData)
	test.ExpectEquality(t, cmds[4].Address, memorymap.ClockGenBase+clockgen.RegSendGo)
}

func TestStart_quiescesBeforeProgramming(t *testing.T) {
	var writes []bus.Transaction
	_, vp := newSystem(func(tr bus.Transaction) {
		if tr.Write {
			writes = append(writes, tr)
		}
	})

	err := vp.Start(0)
	test.DemandSuccess(t, err)

	// the framebuffer is disabled before any other write and re-enabled
	// by the final framebuffer write
	enable := memorymap.FramebufferBase + framebuffer.RegEnable
	test.DemandEquality(t, writes[0].Address, enable)
	test.ExpectEquality(t, writes[0].Data, uint32(0))

	last := bus.Transaction{}
	for _, w := range writes {
		if w.Address == enable {
			last = w
		}
	}
	test.ExpectEquality(t, last.Data, uint32(1))
}

func TestStart_timeout(t *testing.T) {
	soc, vp := newSystem(nil)
	soc.ClockGen.Wedge()

	err := vp.Start(0)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, processor.Timeout))
}

func TestService(t *testing.T) {
	soc, vp := newSystem(nil)

	err := vp.Start(2)
	test.DemandSuccess(t, err)

	// the demo board loops the framebuffer output back into both sampler
	// inputs, so servicing after a mode change sees the new resolution
	vp.Service()
	test.ExpectEquality(t, soc.Bus.Read32(memorymap.Sampler0Base+dvisampler.RegHRes), uint32(640))
	test.ExpectEquality(t, soc.Bus.Read32(memorymap.Sampler0Base+dvisampler.RegVRes), uint32(480))
}
