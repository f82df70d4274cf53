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

package pattern_test

import (
	"testing"

	"github.com/disdi/litex/firmware/pattern"
	"github.com/disdi/litex/hardware/bus"
	"github.com/disdi/litex/test"
)

func TestColorBars(t *testing.T) {
	const width = 16
	const height = 2
	const origin = uint32(0x40000000)

	b := bus.NewSimBus()
	b.AttachRAM(bus.NewRAM(origin, width*height*4))

	pattern.ColorBars(b, origin, width, height)

	// 16 pixels over 8 bars: two pixels per bar. white first, black last
	test.ExpectEquality(t, b.Read32(origin), uint32(0x00ffffff))
	test.ExpectEquality(t, b.Read32(origin+1*4), uint32(0x00ffffff))
	test.ExpectEquality(t, b.Read32(origin+2*4), uint32(0x00ffff00))
	test.ExpectEquality(t, b.Read32(origin+10*4), uint32(0x00ff0000))
	test.ExpectEquality(t, b.Read32(origin+15*4), uint32(0x00000000))

	// second row is identical to the first
	for x := uint32(0); x < width; x++ {
		test.ExpectEquality(t, b.Read32(origin+(width+x)*4), b.Read32(origin+x*4), "column", x)
	}
}
