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

// Package hardware and its sub-packages model the demo SoC the firmware
// packages run against. The SoC type assembles the simulated bus, main RAM
// and the peripherals of the demo board: the core-local interrupt
// controller, the pixel clock generator, the framebuffer output and two DVI
// sampler channels with their EDID memory windows.
//
// Nothing in this package tree knows about the firmware packages. The
// boundary between the two is the bus.Bus interface: firmware issues bus
// transactions against the addresses in the memorymap package and the device
// models decode them. The same firmware runs unchanged against a real board
// through the bus/uartbridge package.
package hardware
