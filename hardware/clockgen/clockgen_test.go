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

package clockgen_test

import (
	"testing"

	"github.com/disdi/litex/hardware/clockgen"
	"github.com/disdi/litex/test"
)

// send a command word and poll until BUSY clears. returns the number of
// status polls taken.
func send(cg *clockgen.ClockGen, cmd uint32, data uint8) int {
	cg.Write32(clockgen.RegCmdData, uint32(data)<<2|cmd)
	cg.Write32(clockgen.RegSendCmdData, 1)

	polls := 0
	for cg.Read32(clockgen.RegStatus)&clockgen.StatusBusy != 0 {
		polls++
		if polls > 1000 {
			break
		}
	}
	return polls
}

func TestClockGen_latchesCommands(t *testing.T) {
	cg := clockgen.NewClockGen()

	polls := send(cg, clockgen.CmdDivider, 9)
	test.ExpectInequality(t, polls, 0, "BUSY must assert after a send strobe")
	send(cg, clockgen.CmdMultiplier, 12)

	test.ExpectEquality(t, cg.Divider(), uint8(9))
	test.ExpectEquality(t, cg.Multiplier(), uint8(12))
}

func TestClockGen_progDoneThenLocked(t *testing.T) {
	cg := clockgen.NewClockGen()

	send(cg, clockgen.CmdDivider, 9)
	send(cg, clockgen.CmdMultiplier, 12)
	cg.Write32(clockgen.RegSendGo, 1)

	// PROGDONE must assert before LOCKED
	sawProgDone := false
	polls := 0
	for {
		status := cg.Read32(clockgen.RegStatus)
		if status&clockgen.StatusLocked != 0 {
			test.ExpectEquality(t, sawProgDone, true, "LOCKED before PROGDONE")
			break
		}
		if status&clockgen.StatusProgDone != 0 {
			sawProgDone = true
		}
		polls++
		if polls > 1000 {
			t.Fatal("generator never locked")
		}
	}

	test.ExpectEquality(t, cg.Locked(), true)
}

func TestClockGen_wedged(t *testing.T) {
	cg := clockgen.NewClockGen()
	cg.Wedge()

	cg.Write32(clockgen.RegCmdData, uint32(9)<<2|clockgen.CmdDivider)
	cg.Write32(clockgen.RegSendCmdData, 1)

	// BUSY never clears on a wedged generator
	for i := 0; i < 100; i++ {
		test.ExpectEquality(t, cg.Read32(clockgen.RegStatus)&clockgen.StatusBusy, uint32(clockgen.StatusBusy))
	}
}
