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

import (
	"github.com/disdi/litex/logger"
)

// region associates a Device with the span of bus addresses it decodes.
type region struct {
	origin uint32
	memtop uint32
	dev    Device
}

// SimBus is a simulated register-file bus. Devices are mapped into
// non-overlapping regions of the address space with Map(). Accesses outside
// any mapped region fall through to RAM if a RAM block has been attached,
// otherwise they are logged and read as zero.
type SimBus struct {
	regions []region
	ram     *RAM
}

// NewSimBus is the preferred method of initialisation for SimBus.
func NewSimBus() *SimBus {
	return &SimBus{}
}

// Map a device over the address span [origin, memtop]. Regions must not
// overlap; a misconfigured map is a programming error and is logged on first
// conflicting access rather than policed at map time.
func (sb *SimBus) Map(origin uint32, memtop uint32, dev Device) {
	sb.regions = append(sb.regions, region{origin: origin, memtop: memtop, dev: dev})
}

// AttachRAM to the bus. At most one RAM block is supported.
func (sb *SimBus) AttachRAM(ram *RAM) {
	sb.ram = ram
}

func (sb *SimBus) decode(address uint32) (Device, uint32, bool) {
	for _, r := range sb.regions {
		if address >= r.origin && address <= r.memtop {
			return r.dev, address - r.origin, true
		}
	}
	return nil, 0, false
}

// Read8 implements the Bus interface.
func (sb *SimBus) Read8(address uint32) uint8 {
	if dev, offset, ok := sb.decode(address); ok {
		return dev.Read8(offset)
	}
	if sb.ram != nil && sb.ram.contains(address) {
		return sb.ram.read8(address)
	}
	logger.Logf("bus", "read of unmapped address %#08x", address)
	return 0
}

// Write8 implements the Bus interface.
func (sb *SimBus) Write8(address uint32, data uint8) {
	if dev, offset, ok := sb.decode(address); ok {
		dev.Write8(offset, data)
		return
	}
	if sb.ram != nil && sb.ram.contains(address) {
		sb.ram.write8(address, data)
		return
	}
	logger.Logf("bus", "write of unmapped address %#08x", address)
}

// Read32 implements the Bus interface.
func (sb *SimBus) Read32(address uint32) uint32 {
	if dev, offset, ok := sb.decode(address); ok {
		return dev.Read32(offset)
	}
	if sb.ram != nil && sb.ram.contains(address) {
		return sb.ram.read32(address)
	}
	logger.Logf("bus", "read of unmapped address %#08x", address)
	return 0
}

// Write32 implements the Bus interface.
func (sb *SimBus) Write32(address uint32, data uint32) {
	if dev, offset, ok := sb.decode(address); ok {
		dev.Write32(offset, data)
		return
	}
	if sb.ram != nil && sb.ram.contains(address) {
		sb.ram.write32(address, data)
		return
	}
	logger.Logf("bus", "write of unmapped address %#08x", address)
}
