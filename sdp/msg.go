// Package sdp defines the addressed datagram a core uses to report to the
// host, its wire format and the result payload it carries.
package sdp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sdramtest/topo"
)

// HeaderSize is the length of the encoded header in bytes.
const HeaderSize = 8

// Values used when a core reports to the host.
const (
	DefaultTag   uint8 = 1
	DefaultFlags uint8 = 0x07
)

// ErrShortMessage is returned when decoding fewer bytes than a header.
var ErrShortMessage = errors.New("sdp message too short")

// PortCPU packs a 3-bit port and a 5-bit cpu number into one byte.
type PortCPU uint8

// PortEth addresses the Ethernet interface of a chip.
const PortEth PortCPU = 0xFF

// MakePortCPU builds a PortCPU.
func MakePortCPU(port, cpu uint8) PortCPU {
	return PortCPU((port&0x7)<<5 | cpu&0x1F)
}

// Port returns the port field.
func (p PortCPU) Port() uint8 {
	return uint8(p) >> 5
}

// CPU returns the cpu field.
func (p PortCPU) CPU() uint8 {
	return uint8(p) & 0x1F
}

// Msg is an addressed datagram.
type Msg struct {
	sim.MsgMeta

	Flags    uint8
	Tag      uint8
	DestPort PortCPU
	SrcePort PortCPU
	DestAddr topo.RawID
	SrceAddr topo.RawID

	Payload []byte
}

// Meta returns the meta data of the msg.
func (m *Msg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

func (m *Msg) String() string {
	return fmt.Sprintf("SDP tag %d %s:%d/%d -> %s:%d/%d (%d bytes)",
		m.Tag,
		m.SrceAddr, m.SrcePort.Port(), m.SrcePort.CPU(),
		m.DestAddr, m.DestPort.Port(), m.DestPort.CPU(),
		len(m.Payload))
}

// Encode renders the header and payload in wire order. Addresses are
// little-endian.
func (m *Msg) Encode() []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(m.Payload))

	out[0] = m.Flags
	out[1] = m.Tag
	out[2] = uint8(m.DestPort)
	out[3] = uint8(m.SrcePort)
	binary.LittleEndian.PutUint16(out[4:], uint16(m.DestAddr))
	binary.LittleEndian.PutUint16(out[6:], uint16(m.SrceAddr))

	return append(out, m.Payload...)
}

// Decode parses a message produced by Encode.
func Decode(data []byte) (*Msg, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortMessage, len(data))
	}

	m := &Msg{
		Flags:    data[0],
		Tag:      data[1],
		DestPort: PortCPU(data[2]),
		SrcePort: PortCPU(data[3]),
		DestAddr: topo.RawID(binary.LittleEndian.Uint16(data[4:])),
		SrceAddr: topo.RawID(binary.LittleEndian.Uint16(data[6:])),
	}

	if len(data) > HeaderSize {
		m.Payload = append([]byte(nil), data[HeaderSize:]...)
	}

	return m, nil
}

// Link carries messages from a core to the host.
type Link interface {
	Deliver(msg *Msg) error
}

// MsgBuilder is a factory for Msg.
type MsgBuilder struct {
	src, dst sim.RemotePort
	flags    uint8
	tag      uint8
	destPort PortCPU
	srcePort PortCPU
	destAddr topo.RawID
	srceAddr topo.RawID
	payload  []byte
}

// WithSrc sets the simulation port the msg leaves from.
func (b MsgBuilder) WithSrc(src sim.RemotePort) MsgBuilder {
	b.src = src
	return b
}

// WithDst sets the simulation port the msg is delivered to.
func (b MsgBuilder) WithDst(dst sim.RemotePort) MsgBuilder {
	b.dst = dst
	return b
}

// WithFlags sets the flags byte.
func (b MsgBuilder) WithFlags(flags uint8) MsgBuilder {
	b.flags = flags
	return b
}

// WithTag sets the IP tag used by the host side.
func (b MsgBuilder) WithTag(tag uint8) MsgBuilder {
	b.tag = tag
	return b
}

// WithDestPort sets the destination port and cpu.
func (b MsgBuilder) WithDestPort(p PortCPU) MsgBuilder {
	b.destPort = p
	return b
}

// WithSrcePort sets the source port and cpu.
func (b MsgBuilder) WithSrcePort(p PortCPU) MsgBuilder {
	b.srcePort = p
	return b
}

// WithDestAddr sets the destination chip.
func (b MsgBuilder) WithDestAddr(addr topo.RawID) MsgBuilder {
	b.destAddr = addr
	return b
}

// WithSrceAddr sets the source chip.
func (b MsgBuilder) WithSrceAddr(addr topo.RawID) MsgBuilder {
	b.srceAddr = addr
	return b
}

// WithPayload sets the bytes after the header.
func (b MsgBuilder) WithPayload(payload []byte) MsgBuilder {
	b.payload = payload
	return b
}

// Build creates a Msg.
func (b MsgBuilder) Build() *Msg {
	return &Msg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: b.src,
			Dst: b.dst,
		},
		Flags:    b.flags,
		Tag:      b.tag,
		DestPort: b.destPort,
		SrcePort: b.srcePort,
		DestAddr: b.destAddr,
		SrceAddr: b.srceAddr,
		Payload:  b.payload,
	}
}

// ReportBuilder returns a builder preset with the addressing a core uses to
// report to the host through its board's Ethernet chip.
func ReportBuilder(id topo.Identity) MsgBuilder {
	return MsgBuilder{}.
		WithTag(DefaultTag).
		WithDestPort(PortEth).
		WithDestAddr(id.EthRaw).
		WithFlags(DefaultFlags).
		WithSrcePort(MakePortCPU(0, uint8(id.CoreID))).
		WithSrceAddr(id.ChipRaw)
}
