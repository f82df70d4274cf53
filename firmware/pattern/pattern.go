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

// Package pattern writes test pictures into a framebuffer DMA window so the
// video demo has pixels to scan out.
package pattern

import (
	"github.com/disdi/litex/hardware/bus"
)

// the classic eight colour bars, as xRGB words.
var bars = []uint32{
	0x00ffffff, // white
	0x00ffff00, // yellow
	0x0000ffff, // cyan
	0x0000ff00, // green
	0x00ff00ff, // magenta
	0x00ff0000, // red
	0x000000ff, // blue
	0x00000000, // black
}

// ColorBars fills the width*height frame at base with eight vertical colour
// bars, 4 bytes per pixel.
func ColorBars(b bus.Bus, base uint32, width int, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := bars[x*len(bars)/width]
			b.Write32(base+uint32((y*width+x)*4), c)
		}
	}
}
