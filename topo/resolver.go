package topo

import "fmt"

// DefaultAddressStride is the distance between the last IP octets of two
// neighbouring boards.
const DefaultAddressStride = 16

// Resolver turns raw identifiers into an Identity.
type Resolver struct {
	chipGrid  Grid
	boardGrid Grid
	stride    int
}

// ResolverBuilder can build resolvers.
type ResolverBuilder struct {
	chipGrid  Grid
	boardGrid Grid
	stride    int
}

// WithChipGrid sets the size of the machine-wide chip grid.
func (b ResolverBuilder) WithChipGrid(width, height int) ResolverBuilder {
	b.chipGrid = Grid{Width: width, Height: height}
	return b
}

// WithBoardGrid sets the size of the chip grid of one board.
func (b ResolverBuilder) WithBoardGrid(width, height int) ResolverBuilder {
	b.boardGrid = Grid{Width: width, Height: height}
	return b
}

// WithAddressStride sets how far apart the IP addresses of two boards are.
func (b ResolverBuilder) WithAddressStride(stride int) ResolverBuilder {
	b.stride = stride
	return b
}

// Build creates a resolver.
func (b ResolverBuilder) Build() (*Resolver, error) {
	if b.stride == 0 {
		b.stride = DefaultAddressStride
	}

	if b.stride < 0 {
		return nil, fmt.Errorf("address stride %d must be positive", b.stride)
	}

	if err := b.chipGrid.validate("chip"); err != nil {
		return nil, err
	}

	if err := b.boardGrid.validate("board"); err != nil {
		return nil, err
	}

	return &Resolver{
		chipGrid:  b.chipGrid,
		boardGrid: b.boardGrid,
		stride:    b.stride,
	}, nil
}

// ChipGrid returns the chip grid the resolver checks against.
func (r *Resolver) ChipGrid() Grid {
	return r.chipGrid
}

// BoardGrid returns the per-board grid the resolver checks against.
func (r *Resolver) BoardGrid() Grid {
	return r.boardGrid
}

// BoardNumber derives the board number from the last octet of its address.
// Addresses are assumed to be handed out contiguously, stride apart, starting
// at 1. An octet of 0 maps to board 0.
func (r *Resolver) BoardNumber(ip IPv4) int {
	if ip[3] == 0 {
		return 0
	}

	return (int(ip[3]) - 1) / r.stride
}

// Resolve computes the identity of a core. When a raw id decodes outside its
// grid the identity is still returned, together with an *AnomalyError.
func (r *Resolver) Resolve(in RawInputs) (Identity, error) {
	id := Identity{
		CoreID:   in.CoreID,
		ChipRaw:  in.ChipRaw,
		Chip:     in.ChipRaw.Decode(),
		BoardRaw: in.BoardRaw,
		Board:    in.BoardRaw.Decode(),
		EthRaw:   in.EthRaw,
		IP:       in.IP,
	}

	id.ChipIndex = r.chipGrid.LinearIndex(id.Chip)
	id.BoardIndex = r.boardGrid.LinearIndex(id.Board)
	id.BoardNumber = r.BoardNumber(in.IP)

	if !r.chipGrid.Contains(id.Chip) {
		return id, &AnomalyError{
			Field: "chip",
			Raw:   in.ChipRaw,
			Coord: id.Chip,
			Grid:  r.chipGrid,
		}
	}

	if !r.boardGrid.Contains(id.Board) {
		return id, &AnomalyError{
			Field: "board",
			Raw:   in.BoardRaw,
			Coord: id.Board,
			Grid:  r.boardGrid,
		}
	}

	return id, nil
}
