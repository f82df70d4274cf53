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

package hardware

import (
	"github.com/disdi/litex/hardware/bus"
	"github.com/disdi/litex/hardware/clic"
	"github.com/disdi/litex/hardware/clockgen"
	"github.com/disdi/litex/hardware/dvisampler"
	"github.com/disdi/litex/hardware/framebuffer"
	"github.com/disdi/litex/hardware/memorymap"
)

// InterruptHandler is called by the SoC step loop when the CLIC asserts an
// interrupt and global interrupts are enabled. It plays the part of the CPU
// trap entry: the handler is expected to acknowledge the interrupt (for a
// software-pended line, by clearing the pending bit) or delivery will repeat
// on the next step.
type InterruptHandler func(id int, priority uint8)

// SoC assembles the simulated system: the bus, main RAM and the peripherals
// of the demo board, wired per the memorymap package. Firmware drivers are
// given soc.Bus and the relevant base addresses; they never touch the device
// models directly.
type SoC struct {
	Bus *bus.SimBus
	RAM *bus.RAM

	CLIC        *clic.CLIC
	ClockGen    *clockgen.ClockGen
	Framebuffer *framebuffer.Framebuffer
	Sampler0    *dvisampler.Sampler
	Sampler1    *dvisampler.Sampler

	handler InterruptHandler

	// the global interrupt enable gate, the analogue of the CPU's mie bit.
	// delivery only happens while this is true.
	gie bool
}

// NewSoC is the preferred method of initialisation for SoC.
func NewSoC() *SoC {
	soc := &SoC{
		Bus:      bus.NewSimBus(),
		RAM:      bus.NewRAM(memorymap.OriginRAM, memorymap.SizeRAM),
		CLIC:     clic.NewCLIC(),
		ClockGen: clockgen.NewClockGen(),
		Sampler0: dvisampler.NewSampler("dvisampler0"),
		Sampler1: dvisampler.NewSampler("dvisampler1"),
	}
	soc.Framebuffer = framebuffer.NewFramebuffer(soc.RAM)

	// demo board loopback: the framebuffer output feeds both sampler inputs
	soc.Sampler0.Connect(soc.Framebuffer)
	soc.Sampler1.Connect(soc.Framebuffer)

	soc.Bus.AttachRAM(soc.RAM)
	soc.Bus.Map(memorymap.CLICBase, memorymap.CLICMemtop, soc.CLIC)
	soc.Bus.Map(memorymap.ClockGenBase, memorymap.ClockGenMemtop, soc.ClockGen)
	soc.Bus.Map(memorymap.FramebufferBase, memorymap.FramebufferTop, soc.Framebuffer)
	soc.Bus.Map(memorymap.Sampler0Base, memorymap.Sampler0Memtop, soc.Sampler0)
	soc.Bus.Map(memorymap.Sampler1Base, memorymap.Sampler1Memtop, soc.Sampler1)
	soc.Bus.Map(memorymap.EDID0Base, memorymap.EDID0Memtop, soc.Sampler0.EDIDWindow())
	soc.Bus.Map(memorymap.EDID1Base, memorymap.EDID1Memtop, soc.Sampler1.EDIDWindow())

	return soc
}

// SetInterruptHandler registers the function the step loop invokes for an
// asserted interrupt.
func (soc *SoC) SetInterruptHandler(handler InterruptHandler) {
	soc.handler = handler
}

// SetGlobalInterruptEnable gates interrupt delivery, the analogue of
// irq_setie() on the real CPU.
func (soc *SoC) SetGlobalInterruptEnable(enable bool) {
	soc.gie = enable
}

// Step the SoC by one delivery cycle. At most one interrupt is delivered per
// step: the winner of the CLIC's priority arbitration, subject to the hart 0
// threshold and the global enable gate. Input line sampling happens after
// delivery so that a software-pended level-triggered line is seen once
// before the pending bit resynchronises with the (idle) input.
func (soc *SoC) Step() {
	if soc.gie && soc.handler != nil {
		if asserted, id, priority := soc.CLIC.Arbitrate(0); asserted {
			soc.handler(id, priority)
		}
	}

	soc.CLIC.Step()
}
