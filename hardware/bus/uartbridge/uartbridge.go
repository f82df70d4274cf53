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

// Package uartbridge implements the bus.Bus interface over a serial UART
// wishbone bridge, so the firmware drivers run against a real board instead
// of the simulated SoC.
//
// The framing is the bridge's native one: a message type byte (0x01 write,
// 0x02 read), a word count byte, a 32-bit big-endian address, then for a
// write the data words (big-endian) and for a read a reply of count words.
package uartbridge

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/disdi/litex/curated"
	"github.com/disdi/litex/logger"
	"github.com/pkg/term"
)

// OpenError is the error pattern for serial device failures.
const OpenError = "uartbridge: %v"

// message type bytes.
const (
	msgWrite = 0x01
	msgRead  = 0x02
)

const readTimeout = 2 * time.Second

// Bridge is a bus.Bus talking to a real board over a serial device. The
// bus.Bus interface has no error returns; a failed transaction is logged and
// a read returns zero, matching the fire-and-forget register semantics of
// the rest of the repository.
type Bridge struct {
	port io.ReadWriteCloser
}

// Open the serial device in raw mode at the given baud rate. 115200 is the
// usual rate for a LiteX UART bridge.
func Open(device string, baud int) (*Bridge, error) {
	t, err := term.Open(device, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, curated.Errorf(OpenError, err)
	}

	err = t.SetReadTimeout(readTimeout)
	if err != nil {
		t.Close()
		return nil, curated.Errorf(OpenError, err)
	}

	logger.Logf("uartbridge", "connected to %s at %d baud", device, baud)

	return &Bridge{port: t}, nil
}

// newBridge over an arbitrary port. split from Open for testing against a
// recorded port.
func newBridge(port io.ReadWriteCloser) *Bridge {
	return &Bridge{port: port}
}

// Close the serial device.
func (b *Bridge) Close() error {
	err := b.port.Close()
	if err != nil {
		return curated.Errorf(OpenError, err)
	}
	return nil
}

// Read32 implements the bus.Bus interface.
func (b *Bridge) Read32(address uint32) uint32 {
	msg := make([]byte, 6)
	msg[0] = msgRead
	msg[1] = 1
	binary.BigEndian.PutUint32(msg[2:], address)

	if _, err := b.port.Write(msg); err != nil {
		logger.Logf("uartbridge", "read %#08x: %v", address, err)
		return 0
	}

	var reply [4]byte
	if _, err := io.ReadFull(b.port, reply[:]); err != nil {
		logger.Logf("uartbridge", "read %#08x: %v", address, err)
		return 0
	}

	return binary.BigEndian.Uint32(reply[:])
}

// Write32 implements the bus.Bus interface.
func (b *Bridge) Write32(address uint32, data uint32) {
	msg := make([]byte, 10)
	msg[0] = msgWrite
	msg[1] = 1
	binary.BigEndian.PutUint32(msg[2:], address)
	binary.BigEndian.PutUint32(msg[6:], data)

	if _, err := b.port.Write(msg); err != nil {
		logger.Logf("uartbridge", "write %#08x: %v", address, err)
	}
}

// Read8 implements the bus.Bus interface. The bridge only moves whole words;
// the byte is extracted from the aligned word, little-endian lanes.
func (b *Bridge) Read8(address uint32) uint8 {
	word := b.Read32(address &^ 0x3)
	return uint8(word >> (8 * (address & 0x3)))
}

// Write8 implements the bus.Bus interface, as a read-modify-write of the
// aligned word. Not atomic with respect to the board: acceptable because
// nothing else is driving the bridge.
func (b *Bridge) Write8(address uint32, data uint8) {
	aligned := address &^ 0x3
	shift := 8 * (address & 0x3)
	word := b.Read32(aligned)
	word = (word &^ (0xff << shift)) | uint32(data)<<shift
	b.Write32(aligned, word)
}
