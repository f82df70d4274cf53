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

// Package dvisampler is the device model of one DVI input channel. The demo
// SoC carries exactly two. Each channel has a small CSR bank and a dedicated
// EDID memory window of 128 byte-wide slots on a 4-byte stride, which the
// mode sequencer fills so a connected source can read the supported timing.
//
// The demo topology is a loopback: the framebuffer output is the "cable"
// plugged into both sampler inputs, so the resolution detection registers
// follow whatever mode the framebuffer is currently scanning out.
package dvisampler

import (
	"github.com/disdi/litex/hardware/framebuffer"
	"github.com/disdi/litex/logger"
)

// register offsets, relative to the sampler's CSR base address.
const (
	RegHPDEnable = 0x00
	RegHRes      = 0x04 // detected horizontal resolution (read only)
	RegVRes      = 0x08 // detected vertical resolution (read only)
)

// EDIDSlots is the number of byte-wide slots in the EDID memory window.
const EDIDSlots = 128

// Sampler is the model of one DVI input channel.
type Sampler struct {
	label string

	hpdEnable uint32

	// the source "plugged into" this channel. nil means no cable.
	source *framebuffer.Framebuffer

	edid [EDIDSlots]uint8
}

// NewSampler is the preferred method of initialisation for Sampler.
func NewSampler(label string) *Sampler {
	return &Sampler{label: label}
}

// Label implements the bus.Device interface.
func (s *Sampler) Label() string {
	return s.label
}

// Connect a framebuffer output to this channel's input.
func (s *Sampler) Connect(source *framebuffer.Framebuffer) {
	s.source = source
}

// Read32 implements the bus.Device interface.
func (s *Sampler) Read32(offset uint32) uint32 {
	switch offset {
	case RegHPDEnable:
		return s.hpdEnable
	case RegHRes:
		if s.source != nil && s.source.Enabled() {
			h, _ := s.source.Resolution()
			return uint32(h)
		}
	case RegVRes:
		if s.source != nil && s.source.Enabled() {
			_, v := s.source.Resolution()
			return uint32(v)
		}
	}
	return 0
}

// Write32 implements the bus.Device interface.
func (s *Sampler) Write32(offset uint32, data uint32) {
	switch offset {
	case RegHPDEnable:
		if s.hpdEnable != data {
			logger.Logf(s.label, "hot-plug detect <- %d", data)
		}
		s.hpdEnable = data
	}
}

// Read8 implements the bus.Device interface.
func (s *Sampler) Read8(offset uint32) uint8 {
	return uint8(s.Read32(offset &^ 0x3))
}

// Write8 implements the bus.Device interface.
func (s *Sampler) Write8(offset uint32, data uint8) {
	s.Write32(offset&^0x3, uint32(data))
}

// HPDEnabled returns true if hot-plug detect signaling is on.
func (s *Sampler) HPDEnabled() bool {
	return s.hpdEnable != 0
}

// EDIDBytes returns a copy of the channel's EDID memory.
func (s *Sampler) EDIDBytes() [EDIDSlots]uint8 {
	return s.edid
}

// EDIDWindow returns the bus device for the channel's EDID memory window.
// One byte per 32-bit word slot: the byte for slot i lives at offset 4*i,
// only the low 8 bits of a word are stored.
func (s *Sampler) EDIDWindow() *EDIDWindow {
	return &EDIDWindow{sampler: s}
}

// EDIDWindow adapts a Sampler's EDID memory to the bus.Device interface.
type EDIDWindow struct {
	sampler *Sampler
}

// Label implements the bus.Device interface.
func (w *EDIDWindow) Label() string {
	return w.sampler.label + "_edid"
}

// Read32 implements the bus.Device interface.
func (w *EDIDWindow) Read32(offset uint32) uint32 {
	slot := offset / 4
	if offset%4 == 0 && slot < EDIDSlots {
		return uint32(w.sampler.edid[slot])
	}
	return 0
}

// Write32 implements the bus.Device interface.
func (w *EDIDWindow) Write32(offset uint32, data uint32) {
	slot := offset / 4
	if offset%4 == 0 && slot < EDIDSlots {
		w.sampler.edid[slot] = uint8(data)
	}
}

// Read8 implements the bus.Device interface.
func (w *EDIDWindow) Read8(offset uint32) uint8 {
	return uint8(w.Read32(offset))
}

// Write8 implements the bus.Device interface.
func (w *EDIDWindow) Write8(offset uint32, data uint8) {
	w.Write32(offset, uint32(data))
}
