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

// Package sampler is the driver for one DVI input channel. It implements
// the Channel contract the processor package consumes: video initialisation
// at a mode change, periodic servicing of the channel's resolution
// detection, and the hot-plug detect enable toggle.
package sampler

import (
	"github.com/disdi/litex/hardware/bus"
	"github.com/disdi/litex/hardware/dvisampler"
	"github.com/disdi/litex/logger"
)

// Sampler is the driver for one channel.
type Sampler struct {
	bus  bus.Bus
	base uint32
	name string

	// the resolution the channel was initialised with and the resolution
	// most recently detected on the input. Service() logs when the two
	// disagree, ie. when the source has changed mode without a processor
	// restart.
	width, height        int
	detectedW, detectedH int
}

// New is the preferred method of initialisation for Sampler. The name
// distinguishes the channel in log entries and in its EDID block.
func New(b bus.Bus, base uint32, name string) *Sampler {
	return &Sampler{bus: b, base: base, name: name}
}

// Name implements the processor.Channel interface.
func (s *Sampler) Name() string {
	return s.name
}

// InitVideo implements the processor.Channel interface.
func (s *Sampler) InitVideo(hActive int, vActive int) {
	s.width = hActive
	s.height = vActive
	s.detectedW = 0
	s.detectedH = 0
	logger.Logf(s.name, "video initialised for %dx%d", hActive, vActive)
}

// Service implements the processor.Channel interface. It polls the
// resolution detection registers and logs transitions. Never blocks.
func (s *Sampler) Service() {
	w := int(s.bus.Read32(s.base + dvisampler.RegHRes))
	h := int(s.bus.Read32(s.base + dvisampler.RegVRes))

	if w == s.detectedW && h == s.detectedH {
		return
	}
	s.detectedW = w
	s.detectedH = h

	if w == 0 || h == 0 {
		logger.Log(s.name, "input lost")
		return
	}

	if w == s.width && h == s.height {
		logger.Logf(s.name, "input detected at %dx%d", w, h)
	} else {
		logger.Logf(s.name, "input at %dx%d, initialised for %dx%d", w, h, s.width, s.height)
	}
}

// EnableHotplug implements the processor.Channel interface.
func (s *Sampler) EnableHotplug(enable bool) {
	var v uint32
	if enable {
		v = 1
	}
	s.bus.Write32(s.base+dvisampler.RegHPDEnable, v)
}
