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

// Package edid generates EDID 1.3 blocks. A block is 128 bytes: vendor and
// product identification, a display descriptor set carrying one detailed
// timing built from a Timing value, monitor range limits and a monitor name,
// and a trailing checksum.
package edid

import (
	"github.com/disdi/litex/curated"
)

// BlockSize is the size of an EDID block in bytes.
const BlockSize = 128

// error patterns for block generation.
const (
	BadVendor = "edid: vendor id must be three letters A-Z: %s"
	BadName   = "edid: monitor name too long: %s"
)

// Timing describes one video mode in the terms an EDID detailed timing
// descriptor uses. Values are immutable once defined; the mode table in the
// processor package is a fixed array of these.
//
// PixelClock is in units of 10kHz, so 6500 is a 65.00MHz pixel clock. The
// remaining fields are in pixels (horizontal) or lines (vertical).
type Timing struct {
	PixelClock int

	HActive     int
	HBlanking   int
	HSyncOffset int
	HSyncWidth  int

	VActive     int
	VBlanking   int
	VSyncOffset int
	VSyncWidth  int
}

// RefreshRate returns the vertical refresh in whole Hz, computed as
// PixelClock*10000 divided by the full scan span.
func (t Timing) RefreshRate() int {
	span := (t.HActive + t.HBlanking) * (t.VActive + t.VBlanking)
	return t.PixelClock * 10000 / span
}

// descriptor field tags (byte 3 of a non-timing display descriptor).
const (
	tagRangeLimits = 0xfd
	tagMonitorName = 0xfc
	tagDummy       = 0x10
)

// Generate an EDID 1.3 block. The vendor id is three letters A-Z, the
// product code two bytes given as a two-character string, year is the year
// of manufacture and name is the monitor name (13 characters at most).
//
// Two blocks generated with identical arguments except for the name differ
// only in the monitor name descriptor and the checksum byte.
func Generate(vendor string, product string, year int, name string, t Timing) ([BlockSize]byte, error) {
	var e [BlockSize]byte

	if len(vendor) != 3 {
		return e, curated.Errorf(BadVendor, vendor)
	}
	for _, c := range vendor {
		if c < 'A' || c > 'Z' {
			return e, curated.Errorf(BadVendor, vendor)
		}
	}
	if len(name) > 13 {
		return e, curated.Errorf(BadName, name)
	}

	// header
	copy(e[0:8], []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00})

	// vendor id: three 5-bit letters packed into 15 bits, big-endian
	l := [3]byte{vendor[0] - 'A' + 1, vendor[1] - 'A' + 1, vendor[2] - 'A' + 1}
	e[8] = l[0]<<2 | l[1]>>3
	e[9] = l[1]<<5 | l[2]

	// product code and serial number
	if len(product) > 0 {
		e[10] = product[0]
	}
	if len(product) > 1 {
		e[11] = product[1]
	}

	// week and year of manufacture; EDID years are offset from 1990
	e[16] = 0
	e[17] = byte(year - 1990)

	// EDID version 1, revision 3
	e[18] = 1
	e[19] = 3

	// basic display parameters: digital input, sizes undefined, gamma 2.2,
	// preferred timing in the first detailed descriptor
	e[20] = 0x80
	e[23] = 0x78
	e[24] = 0x0a

	// sRGB chromaticity coordinates
	copy(e[25:35], []byte{0xee, 0x91, 0xa3, 0x54, 0x4c, 0x99, 0x26, 0x0f, 0x50, 0x54})

	// no established timings; standard timings unused
	for i := 38; i < 54; i += 2 {
		e[i] = 0x01
		e[i+1] = 0x01
	}

	detailedTiming(e[54:72], t)
	rangeLimits(e[72:90], t)
	monitorName(e[90:108], name)

	// fourth descriptor is a dummy
	e[111] = tagDummy

	// no extension blocks
	e[126] = 0

	// the block must sum to zero mod 256
	var sum byte
	for _, b := range e[:127] {
		sum += b
	}
	e[127] = -sum

	return e, nil
}

// detailedTiming fills an 18-byte detailed timing descriptor.
func detailedTiming(d []byte, t Timing) {
	d[0] = byte(t.PixelClock)
	d[1] = byte(t.PixelClock >> 8)

	d[2] = byte(t.HActive)
	d[3] = byte(t.HBlanking)
	d[4] = byte(t.HActive>>8)<<4 | byte(t.HBlanking>>8)

	d[5] = byte(t.VActive)
	d[6] = byte(t.VBlanking)
	d[7] = byte(t.VActive>>8)<<4 | byte(t.VBlanking>>8)

	d[8] = byte(t.HSyncOffset)
	d[9] = byte(t.HSyncWidth)
	d[10] = byte(t.VSyncOffset&0xf)<<4 | byte(t.VSyncWidth&0xf)
	d[11] = byte(t.HSyncOffset>>8)<<6 | byte(t.HSyncWidth>>8)<<4 |
		byte(t.VSyncOffset>>4)<<2 | byte(t.VSyncWidth>>4)

	// image size and borders undefined; digital separate sync, both
	// polarities positive
	d[17] = 0x1e
}

// rangeLimits fills an 18-byte monitor range limits descriptor derived from
// the timing.
func rangeLimits(d []byte, t Timing) {
	d[3] = tagRangeLimits

	vRate := t.RefreshRate()
	hRate := t.PixelClock * 10 / (t.HActive + t.HBlanking) // kHz

	d[5] = byte(vRate - 1)
	d[6] = byte(vRate + 1)
	d[7] = byte(hRate - 1)
	d[8] = byte(hRate + 1)

	// maximum supported pixel clock, in 10MHz units rounded up
	d[9] = byte((t.PixelClock + 999) / 1000)

	d[10] = 0x0a
	for i := 11; i < 18; i++ {
		d[i] = 0x20
	}
}

// monitorName fills an 18-byte monitor name descriptor. The name is
// terminated with a linefeed and padded with spaces.
func monitorName(d []byte, name string) {
	d[3] = tagMonitorName
	i := 5
	for ; i < 5+len(name); i++ {
		d[i] = name[i-5]
	}
	if i < 18 {
		d[i] = 0x0a
		i++
	}
	for ; i < 18; i++ {
		d[i] = 0x20
	}
}
