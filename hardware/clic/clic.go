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

// Package clic is the device model of the core-local interrupt controller.
// It is the simulated-hardware side of the register map the firmware driver
// in firmware/clic programs.
//
// Register banks are byte wide, one byte per interrupt line:
//
//	+0x0000  pending
//	+0x0400  enable
//	+0x0800  attributes
//	+0x0c00  priority
//	+0x1000  threshold (one byte per hart, 0x1000 stride)
//
// The attribute byte holds the trigger type in bit 0 (edge=1, level=0) and
// the polarity in bit 2 (positive=1, negative=0). All other bits read back
// as written but have no effect.
package clic

// Number of interrupt lines and harts implemented by the model.
const (
	NumInterrupts = 64
	NumHarts      = 1
)

// register bank offsets, relative to the CLIC base address.
const (
	bankPending    = 0x0000
	bankEnable     = 0x0400
	bankAttr       = 0x0800
	bankPriority   = 0x0c00
	bankThreshold  = 0x1000
	thresholdSlide = 0x1000 // per-hart stride
)

// attribute byte bits.
const (
	attrTrigEdge = 0x01
	attrPolPos   = 0x04
)

// CLIC is the interrupt controller model.
type CLIC struct {
	pending   [NumInterrupts]uint8
	enable    [NumInterrupts]uint8
	attr      [NumInterrupts]uint8
	priority  [NumInterrupts]uint8
	threshold [NumHarts]uint8

	// external interrupt input lines and their state on the previous Step().
	// edge detection compares the two.
	input     [NumInterrupts]bool
	prevInput [NumInterrupts]bool
}

// NewCLIC is the preferred method of initialisation for CLIC.
func NewCLIC() *CLIC {
	return &CLIC{}
}

// Label implements the bus.Device interface.
func (c *CLIC) Label() string {
	return "clic"
}

// decode returns the bank array and index for an offset, or nil if the
// offset does not address an implemented register.
func (c *CLIC) decode(offset uint32) *uint8 {
	bank := offset & 0xfc00
	idx := offset & 0x03ff

	switch bank {
	case bankPending:
		if idx < NumInterrupts {
			return &c.pending[idx]
		}
	case bankEnable:
		if idx < NumInterrupts {
			return &c.enable[idx]
		}
	case bankAttr:
		if idx < NumInterrupts {
			return &c.attr[idx]
		}
	case bankPriority:
		if idx < NumInterrupts {
			return &c.priority[idx]
		}
	default:
		if offset >= bankThreshold {
			hart := (offset - bankThreshold) / thresholdSlide
			if hart < NumHarts && (offset-bankThreshold)%thresholdSlide == 0 {
				return &c.threshold[hart]
			}
		}
	}

	return nil
}

// Read8 implements the bus.Device interface.
func (c *CLIC) Read8(offset uint32) uint8 {
	if r := c.decode(offset); r != nil {
		return *r
	}
	return 0
}

// Write8 implements the bus.Device interface.
func (c *CLIC) Write8(offset uint32, data uint8) {
	if r := c.decode(offset); r != nil {
		*r = data
	}
}

// Read32 implements the bus.Device interface. CSR registers are a byte wide
// so a word access sees the addressed byte in the low bits, as on a LiteX
// bus with 8-bit CSR data width.
func (c *CLIC) Read32(offset uint32) uint32 {
	return uint32(c.Read8(offset))
}

// Write32 implements the bus.Device interface.
func (c *CLIC) Write32(offset uint32, data uint32) {
	c.Write8(offset, uint8(data))
}

// SetInput drives an external interrupt input line. The pending bits do not
// react until the next Step().
func (c *CLIC) SetInput(line int, level bool) {
	c.input[line] = level
}

// Step advances the input sampling logic by one cycle. Edge triggered lines
// set their pending bit on the configured edge and hold it until software
// clears it. Level triggered lines follow their input, with polarity.
func (c *CLIC) Step() {
	for i := 0; i < NumInterrupts; i++ {
		if c.attr[i]&attrTrigEdge == attrTrigEdge {
			var edge bool
			if c.attr[i]&attrPolPos == attrPolPos {
				edge = !c.prevInput[i] && c.input[i]
			} else {
				edge = c.prevInput[i] && !c.input[i]
			}
			if edge {
				c.pending[i] = 1
			}
		} else {
			follow := c.input[i]
			if c.attr[i]&attrPolPos != attrPolPos {
				follow = !follow
			}
			if follow {
				c.pending[i] = 1
			} else {
				c.pending[i] = 0
			}
		}
		c.prevInput[i] = c.input[i]
	}
}

// Arbitrate returns the interrupt the controller asserts for the given hart,
// if any. The winner is the lowest-numbered line among the pending and
// enabled lines with the numerically smallest priority value (lower value =
// higher priority). A non-zero threshold masks every line whose priority is
// greater than or equal to the threshold; a threshold of zero masks nothing.
func (c *CLIC) Arbitrate(hart int) (asserted bool, id int, priority uint8) {
	threshold := c.threshold[hart]

	best := -1
	var bestPrio uint8

	for i := 0; i < NumInterrupts; i++ {
		if c.pending[i] == 0 || c.enable[i] == 0 {
			continue
		}
		if threshold != 0 && c.priority[i] >= threshold {
			continue
		}
		if best == -1 || c.priority[i] < bestPrio {
			best = i
			bestPrio = c.priority[i]
		}
	}

	if best == -1 {
		return false, 0, 0
	}
	return true, best, bestPrio
}
