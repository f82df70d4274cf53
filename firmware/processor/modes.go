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

package processor

import (
	"fmt"

	"github.com/disdi/litex/firmware/edid"
)

// Modes is the table of supported video timings. Entries are never mutated;
// a mode is referred to by its index in this table.
var Modes = []edid.Timing{
	{
		PixelClock: 6500,

		HActive:     1024,
		HBlanking:   320,
		HSyncOffset: 24,
		HSyncWidth:  136,

		VActive:     768,
		VBlanking:   38,
		VSyncOffset: 3,
		VSyncWidth:  6,
	}, {
		PixelClock: 7425,

		HActive:     1280,
		HBlanking:   370,
		HSyncOffset: 220,
		HSyncWidth:  40,

		VActive:     720,
		VBlanking:   30,
		VSyncOffset: 20,
		VSyncWidth:  5,
	}, {
		PixelClock: 2517,

		HActive:     640,
		HBlanking:   160,
		HSyncOffset: 16,
		HSyncWidth:  96,

		VActive:     480,
		VBlanking:   45,
		VSyncOffset: 10,
		VSyncWidth:  2,
	}, {
		PixelClock: 4000,

		HActive:     800,
		HBlanking:   256,
		HSyncOffset: 40,
		HSyncWidth:  128,

		VActive:     600,
		VBlanking:   28,
		VSyncOffset: 1,
		VSyncWidth:  4,
	},
}

// ListModes returns one human readable descriptor per mode table entry, of
// the form "1024x768 @59Hz". Pure: no hardware access.
func ListModes() []string {
	desc := make([]string, len(Modes))
	for i, m := range Modes {
		desc[i] = fmt.Sprintf("%dx%d @%dHz", m.HActive, m.VActive, m.RefreshRate())
	}
	return desc
}
