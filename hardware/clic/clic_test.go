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

package clic_test

import (
	"testing"

	"github.com/disdi/litex/hardware/clic"
	"github.com/disdi/litex/test"
)

// register bank offsets as the firmware sees them.
const (
	pending   = 0x0000
	enable    = 0x0400
	attr      = 0x0800
	priority  = 0x0c00
	threshold = 0x1000
)

func TestCLIC_bankDecoding(t *testing.T) {
	c := clic.NewCLIC()

	c.Write8(pending+5, 1)
	c.Write8(enable+5, 1)
	c.Write8(attr+5, 0x05)
	c.Write8(priority+5, 100)
	c.Write8(threshold, 42)

	test.ExpectEquality(t, c.Read8(pending+5), uint8(1))
	test.ExpectEquality(t, c.Read8(enable+5), uint8(1))
	test.ExpectEquality(t, c.Read8(attr+5), uint8(0x05))
	test.ExpectEquality(t, c.Read8(priority+5), uint8(100))
	test.ExpectEquality(t, c.Read8(threshold), uint8(42))

	// neighbouring lines are untouched
	test.ExpectEquality(t, c.Read8(pending+4), uint8(0))
	test.ExpectEquality(t, c.Read8(priority+6), uint8(0))
}

func TestCLIC_arbitration(t *testing.T) {
	c := clic.NewCLIC()

	// three pending+enabled lines with different priorities. lowest value
	// wins
	for _, l := range []struct {
		irq  uint32
		prio uint8
	}{{10, 200}, {20, 50}, {30, 128}} {
		c.Write8(attr+l.irq, 0x05) // edge, positive
		c.Write8(priority+l.irq, l.prio)
		c.Write8(enable+l.irq, 1)
		c.Write8(pending+l.irq, 1)
	}

	asserted, id, prio := c.Arbitrate(0)
	test.DemandEquality(t, asserted, true)
	test.ExpectEquality(t, id, 20)
	test.ExpectEquality(t, prio, uint8(50))

	// acknowledging the winner reveals the runner-up
	c.Write8(pending+20, 0)
	asserted, id, prio = c.Arbitrate(0)
	test.DemandEquality(t, asserted, true)
	test.ExpectEquality(t, id, 30)
	test.ExpectEquality(t, prio, uint8(128))
}

func TestCLIC_arbitrationTies(t *testing.T) {
	c := clic.NewCLIC()

	// equal priorities: lowest numbered line wins
	for _, irq := range []uint32{12, 7, 40} {
		c.Write8(attr+irq, 0x05)
		c.Write8(priority+irq, 99)
		c.Write8(enable+irq, 1)
		c.Write8(pending+irq, 1)
	}

	asserted, id, _ := c.Arbitrate(0)
	test.DemandEquality(t, asserted, true)
	test.ExpectEquality(t, id, 7)
}

func TestCLIC_threshold(t *testing.T) {
	c := clic.NewCLIC()

	c.Write8(attr+3, 0x05)
	c.Write8(priority+3, 128)
	c.Write8(enable+3, 1)
	c.Write8(pending+3, 1)

	// threshold equal to the priority masks the line
	c.Write8(threshold, 128)
	asserted, _, _ := c.Arbitrate(0)
	test.ExpectEquality(t, asserted, false)

	// threshold above the priority lets it through
	c.Write8(threshold, 129)
	asserted, _, _ = c.Arbitrate(0)
	test.ExpectEquality(t, asserted, true)

	// a zero threshold masks nothing
	c.Write8(threshold, 0)
	asserted, _, _ = c.Arbitrate(0)
	test.ExpectEquality(t, asserted, true)
}

func TestCLIC_disabledLinesDoNotAssert(t *testing.T) {
	c := clic.NewCLIC()

	c.Write8(attr+8, 0x05)
	c.Write8(priority+8, 1)
	c.Write8(pending+8, 1)

	asserted, _, _ := c.Arbitrate(0)
	test.ExpectEquality(t, asserted, false)
}

func TestCLIC_edgeDetection(t *testing.T) {
	c := clic.NewCLIC()

	// edge triggered, positive polarity: pend on the rising edge only
	c.Write8(attr+2, 0x05)

	c.SetInput(2, false)
	c.Step()
	test.ExpectEquality(t, c.Read8(pending+2), uint8(0))

	c.SetInput(2, true)
	c.Step()
	test.ExpectEquality(t, c.Read8(pending+2), uint8(1))

	// the pending bit holds after the input drops; software clears it
	c.SetInput(2, false)
	c.Step()
	test.ExpectEquality(t, c.Read8(pending+2), uint8(1))

	c.Write8(pending+2, 0)
	c.Step()
	test.ExpectEquality(t, c.Read8(pending+2), uint8(0))
}

func TestCLIC_negativeEdgeDetection(t *testing.T) {
	c := clic.NewCLIC()

	// edge triggered, negative polarity: pend on the falling edge
	c.Write8(attr+2, 0x01)

	c.SetInput(2, true)
	c.Step()
	test.ExpectEquality(t, c.Read8(pending+2), uint8(0))

	c.SetInput(2, false)
	c.Step()
	test.ExpectEquality(t, c.Read8(pending+2), uint8(1))
}

func TestCLIC_levelFollowsInput(t *testing.T) {
	c := clic.NewCLIC()

	// level triggered, positive polarity: pending follows the input
	c.Write8(attr+6, 0x04)

	c.SetInput(6, true)
	c.Step()
	test.ExpectEquality(t, c.Read8(pending+6), uint8(1))

	c.SetInput(6, false)
	c.Step()
	test.ExpectEquality(t, c.Read8(pending+6), uint8(0))
}
