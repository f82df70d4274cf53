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

// Package framebuffer is the device model of the video output core. It
// latches the timing registers and the DMA base/length pairs programmed by
// the mode sequencer, and scans the active DMA window out of main RAM into
// a pixel buffer the gui package can hand to SDL.
package framebuffer

import (
	"github.com/disdi/litex/hardware/bus"
	"github.com/disdi/litex/logger"
)

// register offsets, relative to the framebuffer base address. all registers
// are 32-bit.
const (
	RegEnable     = 0x00
	RegHRes       = 0x04
	RegHSyncStart = 0x08
	RegHSyncEnd   = 0x0c
	RegHScan      = 0x10
	RegVRes       = 0x14
	RegVSyncStart = 0x18
	RegVSyncEnd   = 0x1c
	RegVScan      = 0x20
	RegBase0      = 0x24
	RegLength0    = 0x28
	RegBase1      = 0x2c
	RegLength1    = 0x30
)

// pixels in the DMA window are stored 4 bytes per pixel: the low 24 bits of
// each little-endian word are the blue, green and red components; the top
// byte is ignored.
const PixelDepth = 4

// Framebuffer is the video output model. The zero value is not usable; use
// NewFramebuffer().
type Framebuffer struct {
	ram *bus.RAM

	enable uint32

	hres       uint32
	hsyncStart uint32
	hsyncEnd   uint32
	hscan      uint32
	vres       uint32
	vsyncStart uint32
	vsyncEnd   uint32
	vscan      uint32

	base   [2]uint32
	length [2]uint32
}

// NewFramebuffer is the preferred method of initialisation for Framebuffer.
// The RAM block is the memory the DMA engine reads from.
func NewFramebuffer(ram *bus.RAM) *Framebuffer {
	return &Framebuffer{ram: ram}
}

// Label implements the bus.Device interface.
func (fb *Framebuffer) Label() string {
	return "framebuffer"
}

func (fb *Framebuffer) reg(offset uint32) *uint32 {
	switch offset {
	case RegEnable:
		return &fb.enable
	case RegHRes:
		return &fb.hres
	case RegHSyncStart:
		return &fb.hsyncStart
	case RegHSyncEnd:
		return &fb.hsyncEnd
	case RegHScan:
		return &fb.hscan
	case RegVRes:
		return &fb.vres
	case RegVSyncStart:
		return &fb.vsyncStart
	case RegVSyncEnd:
		return &fb.vsyncEnd
	case RegVScan:
		return &fb.vscan
	case RegBase0:
		return &fb.base[0]
	case RegLength0:
		return &fb.length[0]
	case RegBase1:
		return &fb.base[1]
	case RegLength1:
		return &fb.length[1]
	}
	return nil
}

// Read32 implements the bus.Device interface.
func (fb *Framebuffer) Read32(offset uint32) uint32 {
	if r := fb.reg(offset); r != nil {
		return *r
	}
	return 0
}

// Write32 implements the bus.Device interface.
func (fb *Framebuffer) Write32(offset uint32, data uint32) {
	if r := fb.reg(offset); r != nil {
		if r == &fb.enable && *r != data {
			logger.Logf("framebuffer", "output enable <- %d", data)
		}
		*r = data
	}
}

// Read8 implements the bus.Device interface.
func (fb *Framebuffer) Read8(offset uint32) uint8 {
	return uint8(fb.Read32(offset &^ 0x3))
}

// Write8 implements the bus.Device interface. The framebuffer registers are
// word-only; byte writes are ignored.
func (fb *Framebuffer) Write8(offset uint32, data uint8) {
	logger.Logf("framebuffer", "byte write to word-only register %#x", offset)
}

// Enabled returns true if the video output is on.
func (fb *Framebuffer) Enabled() bool {
	return fb.enable != 0
}

// Resolution returns the programmed active resolution.
func (fb *Framebuffer) Resolution() (hres int, vres int) {
	return int(fb.hres), int(fb.vres)
}

// DMALength returns the programmed transfer length of the numbered buffer.
func (fb *Framebuffer) DMALength(buffer int) uint32 {
	return fb.length[buffer]
}

// Scanout renders buffer 0's DMA window into pixels, which must be at least
// hres*vres*PixelDepth bytes and is filled in RGBA byte order. A disabled
// output scans out black. The alpha channel is always set to opaque.
func (fb *Framebuffer) Scanout(pixels []byte) {
	n := int(fb.hres * fb.vres)
	if n*PixelDepth > len(pixels) {
		n = len(pixels) / PixelDepth
	}

	if !fb.Enabled() || fb.length[0] == 0 {
		for i := 0; i < n*PixelDepth; i += PixelDepth {
			pixels[i] = 0
			pixels[i+1] = 0
			pixels[i+2] = 0
			pixels[i+3] = 255
		}
		return
	}

	window := fb.ram.Window(fb.base[0], fb.length[0])
	for i := 0; i < n*PixelDepth; i += PixelDepth {
		// little-endian xRGB word: B G R x in byte order
		pixels[i] = window[i+2]   // R
		pixels[i+1] = window[i+1] // G
		pixels[i+2] = window[i]   // B
		pixels[i+3] = 255
	}
}
