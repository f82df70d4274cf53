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

import "encoding/binary"

// RAM is the simulated main memory block. It is deliberately simple: a flat
// byte slice with an origin address. 32-bit accesses are little-endian,
// matching the VexRiscv view of main RAM.
type RAM struct {
	origin uint32
	data   []byte
}

// NewRAM is the preferred method of initialisation for RAM.
func NewRAM(origin uint32, size uint32) *RAM {
	return &RAM{
		origin: origin,
		data:   make([]byte, size),
	}
}

// Origin returns the first address decoded by the RAM block.
func (r *RAM) Origin() uint32 {
	return r.origin
}

// Size of the RAM block in bytes.
func (r *RAM) Size() uint32 {
	return uint32(len(r.data))
}

// Window returns the bytes backing the address span [address, address+length).
// The returned slice aliases the RAM contents. Used by the framebuffer model
// to scan out a DMA window without going through the bus word by word.
func (r *RAM) Window(address uint32, length uint32) []byte {
	idx := address - r.origin
	return r.data[idx : idx+length]
}

func (r *RAM) contains(address uint32) bool {
	return address >= r.origin && address-r.origin < uint32(len(r.data))
}

func (r *RAM) read8(address uint32) uint8 {
	return r.data[address-r.origin]
}

func (r *RAM) write8(address uint32, data uint8) {
	r.data[address-r.origin] = data
}

func (r *RAM) read32(address uint32) uint32 {
	idx := address - r.origin
	return binary.LittleEndian.Uint32(r.data[idx:])
}

func (r *RAM) write32(address uint32, data uint32) {
	idx := address - r.origin
	binary.LittleEndian.PutUint32(r.data[idx:], data)
}
