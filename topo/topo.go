// Package topo resolves the position of a core in the chip and board grids
// from the raw identifiers the platform hands to every core at start.
package topo

import (
	"errors"
	"fmt"
)

// Field layout of a RawID. X occupies the high byte and Y the low byte.
const (
	CoordBits        = 8
	CoordMask  RawID = 1<<CoordBits - 1
	MaxGridDim       = 1 << CoordBits
)

// RawID is the platform's 16-bit encoding of a 2D coordinate.
type RawID uint16

// Coord is a decoded grid coordinate.
type Coord struct {
	X, Y uint8
}

// Decode splits the raw id into its X and Y fields.
func (r RawID) Decode() Coord {
	return Coord{
		X: uint8(r >> CoordBits),
		Y: uint8(r & CoordMask),
	}
}

// Encode packs the coordinate back into the raw id format.
func (c Coord) Encode() RawID {
	return RawID(c.X)<<CoordBits | RawID(c.Y)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

func (r RawID) String() string {
	return fmt.Sprintf("0x%04x", uint16(r))
}

// Grid is the size of a 2D grid of chips.
type Grid struct {
	Width, Height int
}

// Contains reports whether the coordinate lies inside the grid.
func (g Grid) Contains(c Coord) bool {
	return int(c.X) < g.Width && int(c.Y) < g.Height
}

// LinearIndex returns y*Height + x. The order is row-major by y with the
// height as the row length, which is what downstream reporting expects.
func (g Grid) LinearIndex(c Coord) int {
	return int(c.Y)*g.Height + int(c.X)
}

func (g Grid) validate(name string) error {
	if g.Width <= 0 || g.Width > MaxGridDim {
		return fmt.Errorf("%s grid width %d out of range [1, %d]",
			name, g.Width, MaxGridDim)
	}

	if g.Height <= 0 || g.Height > MaxGridDim {
		return fmt.Errorf("%s grid height %d out of range [1, %d]",
			name, g.Height, MaxGridDim)
	}

	if g.Width > g.Height {
		return fmt.Errorf(
			"%s grid %dx%d is wider than tall, linear indices would alias",
			name, g.Width, g.Height)
	}

	return nil
}

// IPv4 is the 4-octet address of a board.
type IPv4 [4]byte

func (ip IPv4) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", ip[0], ip[1], ip[2], ip[3])
}

// RawInputs are the identifiers the platform supplies to a core.
type RawInputs struct {
	CoreID   int
	ChipRaw  RawID
	BoardRaw RawID
	EthRaw   RawID
	IP       IPv4
}

// Identity is the resolved, immutable position of a core.
type Identity struct {
	CoreID int

	ChipRaw   RawID
	Chip      Coord
	ChipIndex int

	BoardRaw   RawID
	Board      Coord
	BoardIndex int

	EthRaw      RawID
	IP          IPv4
	BoardNumber int
}

func (id Identity) String() string {
	return fmt.Sprintf("core %d chip %s board %d%s",
		id.CoreID, id.Chip, id.BoardNumber, id.Board)
}

// ErrTopologyAnomaly is matched by every AnomalyError.
var ErrTopologyAnomaly = errors.New("topology decode anomaly")

// AnomalyError reports a raw id that decodes outside of its grid.
type AnomalyError struct {
	Field string
	Raw   RawID
	Coord Coord
	Grid  Grid
}

func (e *AnomalyError) Error() string {
	return fmt.Sprintf("%s: %s id %s decodes to %s outside %dx%d grid",
		ErrTopologyAnomaly, e.Field, e.Raw, e.Coord, e.Grid.Width, e.Grid.Height)
}

// Is makes errors.Is(err, ErrTopologyAnomaly) succeed.
func (e *AnomalyError) Is(target error) bool {
	return target == ErrTopologyAnomaly
}
