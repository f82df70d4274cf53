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

// Package bus defines the CSR bus concept. Firmware never touches hardware
// directly; it is handed a value implementing the Bus interface and issues
// byte or word transactions against absolute addresses. The same firmware
// therefore runs against the simulated SoC (SimBus), against a real board
// over a serial wishbone bridge (the uartbridge sub-package), or against a
// recording wrapper (Trace) in tests.
package bus

// Bus is the capability through which all hardware access happens. Each
// function performs exactly one bus transaction. A transaction is atomic but
// no sequence of transactions is: a peripheral observing the bus can see any
// interleaving between calls.
//
// None of the functions return an error. A register write is fire-and-forget,
// matching raw hardware addressing: addressing an unmapped or out-of-range
// location is the caller's mistake and implementations are free to ignore the
// write and return zero on read (the SimBus logs such accesses).
type Bus interface {
	Read8(address uint32) uint8
	Write8(address uint32, data uint8)
	Read32(address uint32) uint32
	Write32(address uint32, data uint32)
}

// Device is a peripheral mapped into a region of the bus address space.
// Addresses given to a Device are relative to the region origin.
type Device interface {
	// Label is used to identify the device in log entries
	Label() string

	Read8(offset uint32) uint8
	Write8(offset uint32, data uint8)
	Read32(offset uint32) uint32
	Write32(offset uint32, data uint32)
}
