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
	"github.com/disdi/litex/curated"
)

// RefClock is the clock generator's reference input, in the same 10kHz units
// as Timing.PixelClock: 50.00MHz.
const RefClock = 5000

// the generator's programmable ranges. the output must stay inside the
// supported frequency window.
const (
	multiplierMin = 2
	multiplierMax = 256
	dividerMin    = 1
	dividerMax    = 256
	outputMin     = 500   // 5MHz
	outputMax     = 33300 // 333MHz
)

// Unsynthesisable is the error pattern returned when no divider/multiplier
// pair can produce the requested pixel clock.
const Unsynthesisable = "clocking: no valid parameters for pixel clock of %d0kHz"

// clockMD searches for the multiplier/divider pair minimising the absolute
// frequency error of refClock*m/d against the requested pixel clock, subject
// to the generator's output range. Ties are broken in favour of the smaller
// multiplier, which gives the lower jitter.
//
// For a 65.00MHz pixel clock against the 50.00MHz reference the result is
// exact: m=13, d=10. For 74.25MHz the exact ratio 297/200 needs a multiplier
// outside the programmable range and the best approximation is m=248, d=167
// (74.2515MHz).
func clockMD(refClock int, pixelClock int) (int, int, error) {
	if pixelClock < outputMin || pixelClock > outputMax {
		return 0, 0, curated.Errorf(Unsynthesisable, pixelClock)
	}

	bestM := 0
	bestD := 0

	// compare |ref*m/d - pixel| across candidates without leaving integer
	// arithmetic: the error of (m,d) is |ref*m - pixel*d| / d, so (m,d)
	// improves on (bestM,bestD) when
	//
	//	|ref*m - pixel*d| * bestD < |ref*bestM - pixel*bestD| * d
	for d := dividerMin; d <= dividerMax; d++ {
		for m := multiplierMin; m <= multiplierMax; m++ {
			out := refClock * m / d
			if out < outputMin || out > outputMax {
				continue
			}

			e := int64(refClock*m - pixelClock*d)
			if e < 0 {
				e = -e
			}

			if bestM == 0 {
				bestM = m
				bestD = d
				continue
			}

			bestE := int64(refClock*bestM - pixelClock*bestD)
			if bestE < 0 {
				bestE = -bestE
			}

			if e*int64(bestD) < bestE*int64(d) ||
				(e*int64(bestD) == bestE*int64(d) && m < bestM) {
				bestM = m
				bestD = d
			}
		}
	}

	if bestM == 0 {
		return 0, 0, curated.Errorf(Unsynthesisable, pixelClock)
	}

	return bestM, bestD, nil
}
