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

package bus

import "fmt"

// Transaction describes one bus access observed by a Trace wrapper.
type Transaction struct {
	Write   bool
	Width   int // 8 or 32
	Address uint32
	Data    uint32
}

func (tr Transaction) String() string {
	k := "R"
	if tr.Write {
		k = "W"
	}
	return fmt.Sprintf("%s%-2d %#08x <- %#08x", k, tr.Width, tr.Address, tr.Data)
}

// Trace is a Bus that records every transaction before forwarding it to the
// wrapped bus. The ordering tests over the clock generator command protocol
// are written against a Trace, as is the -trace option of the demo program.
type Trace struct {
	bus    Bus
	record func(Transaction)
}

// NewTrace is the preferred method of initialisation for Trace. The record
// function is called once per transaction, in issue order, before the
// transaction reaches the wrapped bus.
func NewTrace(bus Bus, record func(Transaction)) *Trace {
	return &Trace{bus: bus, record: record}
}

// Read8 implements the Bus interface.
func (t *Trace) Read8(address uint32) uint8 {
	v := t.bus.Read8(address)
	t.record(Transaction{Width: 8, Address: address, Data: uint32(v)})
	return v
}

// Write8 implements the Bus interface.
func (t *Trace) Write8(address uint32, data uint8) {
	t.record(Transaction{Write: true, Width: 8, Address: address, Data: uint32(data)})
	t.bus.Write8(address, data)
}

// Read32 implements the Bus interface.
func (t *Trace) Read32(address uint32) uint32 {
	v := t.bus.Read32(address)
	t.record(Transaction{Width: 32, Address: address, Data: v})
	return v
}

// Write32 implements the Bus interface.
func (t *Trace) Write32(address uint32, data uint32) {
	t.record(Transaction{Write: true, Width: 32, Address: address, Data: data})
	t.bus.Write32(address, data)
}
