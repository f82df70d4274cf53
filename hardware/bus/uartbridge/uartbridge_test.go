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

package uartbridge

import (
	"bytes"
	"testing"

	"github.com/disdi/litex/test"
)

// recordedPort captures everything written to it and replays a scripted
// reply to reads.
type recordedPort struct {
	sent  bytes.Buffer
	reply bytes.Buffer
}

func (p *recordedPort) Write(b []byte) (int, error) {
	return p.sent.Write(b)
}

func (p *recordedPort) Read(b []byte) (int, error) {
	return p.reply.Read(b)
}

func (p *recordedPort) Close() error {
	return nil
}

func TestWrite32_framing(t *testing.T) {
	port := &recordedPort{}
	b := newBridge(port)

	b.Write32(0xe0007008, 0x00000001)

	want := []byte{
		0x01,                   // write
		0x01,                   // one word
		0xe0, 0x00, 0x70, 0x08, // address, big-endian
		0x00, 0x00, 0x00, 0x01, // data, big-endian
	}
	test.ExpectSuccess(t, bytes.Equal(port.sent.Bytes(), want))
}

func TestRead32_framing(t *testing.T) {
	port := &recordedPort{}
	port.reply.Write([]byte{0x12, 0x34, 0x56, 0x78})
	b := newBridge(port)

	v := b.Read32(0x40000000)
	test.ExpectEquality(t, v, uint32(0x12345678))

	want := []byte{
		0x02,                   // read
		0x01,                   // one word
		0x40, 0x00, 0x00, 0x00, // address, big-endian
	}
	test.ExpectSuccess(t, bytes.Equal(port.sent.Bytes(), want))
}

func TestRead32_shortReply(t *testing.T) {
	port := &recordedPort{}
	port.reply.Write([]byte{0x12, 0x34}) // truncated
	b := newBridge(port)

	test.ExpectEquality(t, b.Read32(0x40000000), uint32(0))
}

func TestRead8_laneExtraction(t *testing.T) {
	port := &recordedPort{}
	port.reply.Write([]byte{0x11, 0x22, 0x33, 0x44})
	b := newBridge(port)

	// the board replies with the big-endian word 0x11223344; byte lanes
	// within the word are little-endian
	v := b.Read8(0x40000002)
	test.ExpectEquality(t, v, uint8(0x22))

	// the request is for the aligned word
	test.ExpectEquality(t, port.sent.Bytes()[5], uint8(0x00))
}

func TestWrite8_readModifyWrite(t *testing.T) {
	port := &recordedPort{}
	port.reply.Write([]byte{0x11, 0x22, 0x33, 0x44})
	b := newBridge(port)

	b.Write8(0x40000001, 0xaa)

	// a read of the aligned word followed by a write with one lane replaced
	sent := port.sent.Bytes()
	test.DemandEquality(t, len(sent), 6+10)
	test.ExpectEquality(t, sent[0], uint8(0x02))
	test.ExpectEquality(t, sent[6], uint8(0x01))

	want := []byte{0x11, 0x22, 0xaa, 0x44}
	test.ExpectSuccess(t, bytes.Equal(sent[12:16], want), "modified word")
}
