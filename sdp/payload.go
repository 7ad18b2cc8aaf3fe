package sdp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sarchlab/sdramtest/topo"
)

// Command identifies what a payload reports.
type Command uint16

const (
	CmdResult Command = 0x5201
	CmdAbort  Command = 0x5202
)

func (c Command) String() string {
	switch c {
	case CmdResult:
		return "result"
	case CmdAbort:
		return "abort"
	default:
		return fmt.Sprintf("Command(%#04x)", uint16(c))
	}
}

// ResultPayloadSize is the encoded size of a ResultPayload.
const ResultPayloadSize = 36

// ErrBadPayload is returned for payloads that are not result payloads.
var ErrBadPayload = errors.New("malformed result payload")

// ResultPayload is the body of the message a core sends when its run ends.
// Chip coordinates and the core id travel in the header.
type ResultPayload struct {
	Cmd       Command
	Seq       uint16
	Status    uint8
	FatalKind uint8

	BoardNumber uint16
	BoardRaw    topo.RawID
	ChipIndex   uint16
	BoardIndex  uint16
	Passes      uint16

	Seed       uint32
	Words      uint32
	Mismatches uint32

	// Simulated time the run took, in nanoseconds.
	ElapsedNS uint64
}

// Marshal encodes the payload, little-endian.
func (p ResultPayload) Marshal() []byte {
	b := make([]byte, 0, ResultPayloadSize)

	b = binary.LittleEndian.AppendUint16(b, uint16(p.Cmd))
	b = binary.LittleEndian.AppendUint16(b, p.Seq)
	b = append(b, p.Status, p.FatalKind)
	b = binary.LittleEndian.AppendUint16(b, p.BoardNumber)
	b = binary.LittleEndian.AppendUint16(b, uint16(p.BoardRaw))
	b = binary.LittleEndian.AppendUint16(b, p.ChipIndex)
	b = binary.LittleEndian.AppendUint16(b, p.BoardIndex)
	b = binary.LittleEndian.AppendUint16(b, p.Passes)
	b = binary.LittleEndian.AppendUint32(b, p.Seed)
	b = binary.LittleEndian.AppendUint32(b, p.Words)
	b = binary.LittleEndian.AppendUint32(b, p.Mismatches)
	b = binary.LittleEndian.AppendUint64(b, p.ElapsedNS)

	return b
}

// UnmarshalResultPayload decodes a payload produced by Marshal.
func UnmarshalResultPayload(b []byte) (ResultPayload, error) {
	if len(b) != ResultPayloadSize {
		return ResultPayload{}, fmt.Errorf("%w: %d bytes, want %d",
			ErrBadPayload, len(b), ResultPayloadSize)
	}

	le := binary.LittleEndian
	p := ResultPayload{
		Cmd:         Command(le.Uint16(b[0:])),
		Seq:         le.Uint16(b[2:]),
		Status:      b[4],
		FatalKind:   b[5],
		BoardNumber: le.Uint16(b[6:]),
		BoardRaw:    topo.RawID(le.Uint16(b[8:])),
		ChipIndex:   le.Uint16(b[10:]),
		BoardIndex:  le.Uint16(b[12:]),
		Passes:      le.Uint16(b[14:]),
		Seed:        le.Uint32(b[16:]),
		Words:       le.Uint32(b[20:]),
		Mismatches:  le.Uint32(b[24:]),
		ElapsedNS:   le.Uint64(b[28:]),
	}

	if p.Cmd != CmdResult && p.Cmd != CmdAbort {
		return ResultPayload{}, fmt.Errorf("%w: unknown command %s",
			ErrBadPayload, p.Cmd)
	}

	return p, nil
}
