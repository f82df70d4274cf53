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

// Package memorymap enumerates the address map of the demo SoC. Values are
// in the style of a generated LiteX csr.h: one base per peripheral, fixed
// strides within each peripheral.
package memorymap

// Main RAM. Large enough for two double-buffered 1280x720 framebuffers with
// room to spare.
const (
	OriginRAM = uint32(0x40000000)
	SizeRAM   = uint32(0x00800000) // 8MB
)

// Framebuffer DMA base addresses for the two buffers of the double-buffer
// pair. Each buffer can hold a full 1280x720 frame at 4 bytes per pixel.
const (
	Framebuffer0 = OriginRAM
	Framebuffer1 = OriginRAM + 0x00400000
)

// CSR bases for each peripheral. The span of each region is the peripheral's
// own business; the memtops below are generous.
const (
	EDID0Base       = uint32(0xe0002000) // dvisampler A EDID memory window
	EDID0Memtop     = uint32(0xe00021ff)
	EDID1Base       = uint32(0xe0003000) // dvisampler B EDID memory window
	EDID1Memtop     = uint32(0xe00031ff)
	Sampler0Base    = uint32(0xe0004000)
	Sampler0Memtop  = uint32(0xe00040ff)
	Sampler1Base    = uint32(0xe0005000)
	Sampler1Memtop  = uint32(0xe00050ff)
	FramebufferBase = uint32(0xe0006000)
	FramebufferTop  = uint32(0xe00060ff)
	ClockGenBase    = uint32(0xe0007000)
	ClockGenMemtop  = uint32(0xe00070ff)
	CLICBase        = uint32(0xe0008000)
	CLICMemtop      = uint32(0xe0009fff) // banks at +0x000/0x400/0x800/0xc00, thresholds from +0x1000
)
