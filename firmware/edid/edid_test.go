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

package edid_test

import (
	"testing"

	"github.com/disdi/litex/curated"
	"github.com/disdi/litex/firmware/edid"
	"github.com/disdi/litex/test"
)

var xga = edid.Timing{
	PixelClock:  6500,
	HActive:     1024,
	HBlanking:   320,
	HSyncOffset: 24,
	HSyncWidth:  136,
	VActive:     768,
	VBlanking:   38,
	VSyncOffset: 3,
	VSyncWidth:  6,
}

func TestGenerate_header(t *testing.T) {
	blk, err := edid.Generate("OHW", "MX", 2013, "Mixxeo ch.A", xga)
	test.DemandSuccess(t, err)

	header := []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}
	for i, b := range header {
		test.ExpectEquality(t, blk[i], b, "header byte", i)
	}

	// version 1.3
	test.ExpectEquality(t, blk[18], uint8(1))
	test.ExpectEquality(t, blk[19], uint8(3))

	// year of manufacture is offset from 1990
	test.ExpectEquality(t, blk[17], uint8(23))

	// product code is the two ASCII bytes
	test.ExpectEquality(t, blk[10], uint8('M'))
	test.ExpectEquality(t, blk[11], uint8('X'))
}

func TestGenerate_vendorPacking(t *testing.T) {
	blk, err := edid.Generate("OHW", "MX", 2013, "x", xga)
	test.DemandSuccess(t, err)

	// "OHW": O=15, H=8, W=23 packed as 0 01111 01000 10111
	test.ExpectEquality(t, blk[8], uint8(0x3d))
	test.ExpectEquality(t, blk[9], uint8(0x17))
}

func TestGenerate_checksum(t *testing.T) {
	blk, err := edid.Generate("OHW", "MX", 2013, "Mixxeo ch.A", xga)
	test.DemandSuccess(t, err)

	var sum uint8
	for _, b := range blk {
		sum += b
	}
	test.ExpectEquality(t, sum, uint8(0))
}

func TestGenerate_detailedTiming(t *testing.T) {
	blk, err := edid.Generate("OHW", "MX", 2013, "Mixxeo ch.A", xga)
	test.DemandSuccess(t, err)

	d := blk[54:72]

	// pixel clock in 10kHz units, little-endian: 6500 = 0x1964
	test.ExpectEquality(t, d[0], uint8(0x64))
	test.ExpectEquality(t, d[1], uint8(0x19))

	// 1024 = 0x400 active, 320 = 0x140 blanking
	test.ExpectEquality(t, d[2], uint8(0x00))
	test.ExpectEquality(t, d[3], uint8(0x40))
	test.ExpectEquality(t, d[4], uint8(0x41))

	// 768 = 0x300 active, 38 = 0x26 blanking
	test.ExpectEquality(t, d[5], uint8(0x00))
	test.ExpectEquality(t, d[6], uint8(0x26))
	test.ExpectEquality(t, d[7], uint8(0x30))

	// sync: h offset 24, h width 136, v offset 3, v width 6
	test.ExpectEquality(t, d[8], uint8(24))
	test.ExpectEquality(t, d[9], uint8(136))
	test.ExpectEquality(t, d[10], uint8(0x36))
	test.ExpectEquality(t, d[11], uint8(0x00))
}

func TestGenerate_nameOnlyDifference(t *testing.T) {
	a, err := edid.Generate("OHW", "MX", 2013, "Mixxeo ch.A", xga)
	test.DemandSuccess(t, err)
	b, err := edid.Generate("OHW", "MX", 2013, "Mixxeo ch.B", xga)
	test.DemandSuccess(t, err)

	// blocks generated with identical inputs except the name differ only in
	// the monitor name descriptor (bytes 90-107) and the checksum (byte 127)
	for i := range a {
		inName := i >= 90 && i < 108
		if inName || i == 127 {
			continue
		}
		test.ExpectEquality(t, a[i], b[i], "byte", i)
	}
	test.ExpectInequality(t, a[105], b[105], "name fields must differ")
}

func TestGenerate_refreshRate(t *testing.T) {
	test.ExpectEquality(t, xga.RefreshRate(), 60)

	vga := edid.Timing{
		PixelClock: 2517,
		HActive:    640, HBlanking: 160,
		VActive: 480, VBlanking: 45,
	}
	test.ExpectEquality(t, vga.RefreshRate(), 59)
}

func TestGenerate_badArguments(t *testing.T) {
	_, err := edid.Generate("OHW!", "MX", 2013, "x", xga)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, edid.BadVendor))

	_, err = edid.Generate("ohw", "MX", 2013, "x", xga)
	test.ExpectFailure(t, err)

	_, err = edid.Generate("OHW", "MX", 2013, "name that is too long", xga)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, edid.BadName))
}
