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

// Package clockgen is the device model of the pixel clock generator. It
// speaks the 3-wire command protocol: the driver packs an 8-bit payload and
// a 2-bit command into the cmd_data register, pulses send_cmd_data and polls
// the BUSY flag; once divider and multiplier are latched it pulses send_go
// and polls for PROGDONE then LOCKED.
package clockgen

import (
	"github.com/disdi/litex/logger"
)

// register offsets, relative to the clock generator base address.
const (
	RegCmdData     = 0x00
	RegSendCmdData = 0x04
	RegSendGo      = 0x08
	RegStatus      = 0x0c
)

// status register flags.
const (
	StatusBusy     = 0x01
	StatusProgDone = 0x02
	StatusLocked   = 0x04
)

// command codes carried in the low two bits of the cmd_data word.
const (
	CmdDivider    = 0x1
	CmdMultiplier = 0x3
)

// the number of status reads a flag transition is held off for. the model
// paces itself on status polls rather than on wall-clock time so that a
// single-threaded poll loop always makes progress.
const (
	busyPolls     = 3
	progDonePolls = 5
	lockedPolls   = 8
)

// ClockGen is the clock generator model.
type ClockGen struct {
	cmdData uint32

	// latched programming values, as sent by the driver (ie. value-1)
	divider    uint8
	multiplier uint8

	// countdowns decremented on each status read. zero means the
	// corresponding flag has settled.
	busyCount     int
	progDoneCount int
	lockedCount   int

	progDone bool
	locked   bool

	// a wedged generator never progresses. used to exercise the driver's
	// poll timeouts.
	wedged bool
}

// NewClockGen is the preferred method of initialisation for ClockGen.
func NewClockGen() *ClockGen {
	return &ClockGen{}
}

// Label implements the bus.Device interface.
func (cg *ClockGen) Label() string {
	return "clkgen"
}

// Wedge the generator: status flags freeze in their current state. Poll
// loops against a wedged generator must time out rather than hang.
func (cg *ClockGen) Wedge() {
	cg.wedged = true
}

// Divider returns the latched divider programming value (ie. divider-1).
func (cg *ClockGen) Divider() uint8 {
	return cg.divider
}

// Multiplier returns the latched multiplier programming value (ie.
// multiplier-1).
func (cg *ClockGen) Multiplier() uint8 {
	return cg.multiplier
}

// Locked returns true once the generator has relocked after a go pulse.
func (cg *ClockGen) Locked() bool {
	return cg.locked
}

// Read32 implements the bus.Device interface.
func (cg *ClockGen) Read32(offset uint32) uint32 {
	switch offset {
	case RegCmdData:
		return cg.cmdData
	case RegStatus:
		return uint32(cg.status())
	}
	return 0
}

// Write32 implements the bus.Device interface.
func (cg *ClockGen) Write32(offset uint32, data uint32) {
	switch offset {
	case RegCmdData:
		cg.cmdData = data & 0x3ff

	case RegSendCmdData:
		if data == 0 {
			return
		}
		cmd := cg.cmdData & 0x3
		payload := uint8(cg.cmdData >> 2)
		switch cmd {
		case CmdDivider:
			cg.divider = payload
			logger.Logf("clkgen", "divider latched (%d)", int(payload)+1)
		case CmdMultiplier:
			cg.multiplier = payload
			logger.Logf("clkgen", "multiplier latched (%d)", int(payload)+1)
		default:
			logger.Logf("clkgen", "unknown command %#x", cmd)
		}
		cg.busyCount = busyPolls

	case RegSendGo:
		if data == 0 {
			return
		}
		cg.progDone = false
		cg.locked = false
		cg.progDoneCount = progDonePolls
		cg.lockedCount = lockedPolls
		logger.Log("clkgen", "reprogramming started")
	}
}

// Read8 implements the bus.Device interface.
func (cg *ClockGen) Read8(offset uint32) uint8 {
	return uint8(cg.Read32(offset))
}

// Write8 implements the bus.Device interface.
func (cg *ClockGen) Write8(offset uint32, data uint8) {
	cg.Write32(offset, uint32(data))
}

// status assembles the status byte, advancing the poll countdowns.
func (cg *ClockGen) status() uint8 {
	var s uint8

	if cg.wedged {
		if cg.busyCount > 0 {
			s |= StatusBusy
		}
		return s
	}

	if cg.busyCount > 0 {
		cg.busyCount--
		s |= StatusBusy
	}

	if cg.progDoneCount > 0 {
		cg.progDoneCount--
		if cg.progDoneCount == 0 {
			cg.progDone = true
			logger.Log("clkgen", "PROGDONE")
		}
	}
	if cg.progDone {
		s |= StatusProgDone

		if cg.lockedCount > 0 {
			cg.lockedCount--
			if cg.lockedCount == 0 {
				cg.locked = true
				logger.Log("clkgen", "LOCKED")
			}
		}
	}
	if cg.locked {
		s |= StatusLocked
	}

	return s
}
