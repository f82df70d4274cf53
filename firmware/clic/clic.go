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

// Package clic is the driver for the core-local interrupt controller. It is
// a thin, typed layer over the controller's register banks: every function
// performs exactly one byte transaction on the bus and nothing else.
//
// None of the functions return an error and none of them range-check their
// arguments. An out-of-range interrupt number addresses whatever the bus
// decodes at that address, exactly as raw hardware addressing would.
package clic

import (
	"github.com/disdi/litex/hardware/bus"
)

// NumInterrupts is the number of interrupt lines the driver addresses.
const NumInterrupts = 64

// register bank offsets, relative to the controller base address. each bank
// is byte wide, one byte per interrupt line.
const (
	offsetPending   = 0x0000
	offsetEnable    = 0x0400
	offsetAttr      = 0x0800
	offsetPriority  = 0x0c00
	offsetThreshold = 0x1000 // per hart, 0x1000 stride
	hartStride      = 0x1000
)

// attribute byte bits. bit 0 is the trigger type, bit 2 the polarity. all
// other bits are written as zero by Configure().
const (
	AttrTrigEdge = 0x01 // edge=1, level=0
	AttrPolPos   = 0x04 // positive=1, negative=0
)

// CLIC is the driver for one interrupt controller instance.
type CLIC struct {
	bus  bus.Bus
	base uint32
}

// NewCLIC is the preferred method of initialisation for CLIC.
func NewCLIC(b bus.Bus, base uint32) *CLIC {
	return &CLIC{bus: b, base: base}
}

// Pending returns true if the interrupt's pending bit is set.
func (c *CLIC) Pending(irq int) bool {
	return c.bus.Read8(c.base+offsetPending+uint32(irq)) != 0
}

// SetPending sets the interrupt's pending bit. Hardware normally owns this
// bit for level-triggered sources; writing it is how software-triggered
// testing works.
func (c *CLIC) SetPending(irq int) {
	c.bus.Write8(c.base+offsetPending+uint32(irq), 1)
}

// ClearPending clears the interrupt's pending bit.
func (c *CLIC) ClearPending(irq int) {
	c.bus.Write8(c.base+offsetPending+uint32(irq), 0)
}

// Enable the interrupt.
func (c *CLIC) Enable(irq int) {
	c.bus.Write8(c.base+offsetEnable+uint32(irq), 1)
}

// Disable the interrupt.
func (c *CLIC) Disable(irq int) {
	c.bus.Write8(c.base+offsetEnable+uint32(irq), 0)
}

// Enabled returns true if the interrupt's enable bit is set.
func (c *CLIC) Enabled(irq int) bool {
	return c.bus.Read8(c.base+offsetEnable+uint32(irq)) != 0
}

// Attr returns the interrupt's attribute byte.
func (c *CLIC) Attr(irq int) uint8 {
	return c.bus.Read8(c.base + offsetAttr + uint32(irq))
}

// Priority returns the interrupt's priority byte.
func (c *CLIC) Priority(irq int) uint8 {
	return c.bus.Read8(c.base + offsetPriority + uint32(irq))
}

// Configure writes the interrupt's attribute and priority registers. It must
// be called before Enable() so that a freshly enabled line has a defined
// trigger mode and priority rather than bus-reset defaults.
//
// Note that the attribute and priority writes are two separate bus
// transactions. An asynchronous observer can see one without the other;
// callers must not assume the pair is atomic.
func (c *CLIC) Configure(irq int, priority uint8, edgeTriggered bool, positivePolarity bool) {
	var attr uint8
	if edgeTriggered {
		attr |= AttrTrigEdge
	}
	if positivePolarity {
		attr |= AttrPolPos
	}
	c.bus.Write8(c.base+offsetAttr+uint32(irq), attr)
	c.bus.Write8(c.base+offsetPriority+uint32(irq), priority)
}

// Threshold returns the hart's interrupt threshold. Interrupts with a
// priority value numerically greater than or equal to a non-zero threshold
// are masked (a lower value is a higher priority).
func (c *CLIC) Threshold(hart int) uint8 {
	return c.bus.Read8(c.base + offsetThreshold + uint32(hart)*hartStride)
}

// SetThreshold sets the hart's interrupt threshold. A threshold of zero
// masks nothing.
func (c *CLIC) SetThreshold(hart int, threshold uint8) {
	c.bus.Write8(c.base+offsetThreshold+uint32(hart)*hartStride, threshold)
}
