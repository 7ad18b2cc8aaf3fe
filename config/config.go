// Package config builds simulated machines and loads run configuration.
package config

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sdramtest/core"
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/machine"
	"github.com/sarchlab/sdramtest/sdp"
	"github.com/sarchlab/sdramtest/sdram"
	"github.com/sarchlab/sdramtest/topo"
)

// SDRAMBase is the address of the first byte of a chip's SDRAM.
const SDRAMBase = 0x60000000

// MachineBuilder can build machines.
type MachineBuilder struct {
	engine       sim.Engine
	freq         sim.Freq
	boards       int
	boardWidth   int
	boardHeight  int
	coresPerChip int
	sdramBytes   uint64
	ipBase       topo.IPv4
	ipStride     int
	diagCfg      diag.Config
	link         sdp.Link
}

// NewMachineBuilder returns a builder for one board of 2x2 chips with 18
// cores each, running the default diagnostic.
func NewMachineBuilder() MachineBuilder {
	return MachineBuilder{
		freq:         200 * sim.MHz,
		boards:       1,
		boardWidth:   2,
		boardHeight:  2,
		coresPerChip: 18,
		sdramBytes:   sdram.DefaultCapacity,
		ipBase:       topo.IPv4{192, 168, 240, 1},
		ipStride:     topo.DefaultAddressStride,
		diagCfg:      diag.DefaultConfig(),
	}
}

// WithEngine sets the engine that drives the machine simulation.
func (b MachineBuilder) WithEngine(engine sim.Engine) MachineBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the cores.
func (b MachineBuilder) WithFreq(freq sim.Freq) MachineBuilder {
	b.freq = freq
	return b
}

// WithBoards sets the number of boards. Boards are stacked along y.
func (b MachineBuilder) WithBoards(n int) MachineBuilder {
	b.boards = n
	return b
}

// WithBoardSize sets the chip grid of one board.
func (b MachineBuilder) WithBoardSize(width, height int) MachineBuilder {
	b.boardWidth = width
	b.boardHeight = height
	return b
}

// WithCoresPerChip sets the number of cores of each chip, monitor included.
func (b MachineBuilder) WithCoresPerChip(n int) MachineBuilder {
	b.coresPerChip = n
	return b
}

// WithSDRAMBytes sets the SDRAM size of each chip.
func (b MachineBuilder) WithSDRAMBytes(n uint64) MachineBuilder {
	b.sdramBytes = n
	return b
}

// WithIPBase sets the address of the first board.
func (b MachineBuilder) WithIPBase(ip topo.IPv4) MachineBuilder {
	b.ipBase = ip
	return b
}

// WithIPStride sets the distance between the last octets of two boards.
func (b MachineBuilder) WithIPStride(stride int) MachineBuilder {
	b.ipStride = stride
	return b
}

// WithDiagnostic sets the diagnostic every application core runs.
func (b MachineBuilder) WithDiagnostic(cfg diag.Config) MachineBuilder {
	b.diagCfg = cfg
	return b
}

// WithLink sets where the cores send their results.
func (b MachineBuilder) WithLink(link sdp.Link) MachineBuilder {
	b.link = link
	return b
}

// FromFile applies the machine and diagnostic sections of a file.
func (b MachineBuilder) FromFile(f File) (MachineBuilder, error) {
	ip, err := f.Machine.ParseIPBase()
	if err != nil {
		return b, err
	}

	cfg, err := f.Diagnostic.Config()
	if err != nil {
		return b, err
	}

	b.freq = sim.Freq(f.Machine.FreqMHz) * sim.MHz
	b.boards = f.Machine.Boards
	b.boardWidth = f.Machine.BoardWidth
	b.boardHeight = f.Machine.BoardHeight
	b.coresPerChip = f.Machine.CoresPerChip
	b.sdramBytes = f.Machine.SDRAMBytes
	b.ipBase = ip
	b.ipStride = f.Machine.IPStride
	b.diagCfg = cfg

	return b, nil
}

func (b MachineBuilder) validate() error {
	if b.engine == nil {
		return fmt.Errorf("machine requires an engine")
	}

	if b.link == nil {
		return fmt.Errorf("machine requires a link")
	}

	if b.boards <= 0 {
		return fmt.Errorf("board count %d must be positive", b.boards)
	}

	if b.coresPerChip < 1 || b.coresPerChip > 32 {
		return fmt.Errorf("cores per chip %d out of range [1, 32]",
			b.coresPerChip)
	}

	last := int(b.ipBase[3]) + (b.boards-1)*b.ipStride
	if last > 255 {
		return fmt.Errorf("%d boards %d apart do not fit after %s",
			b.boards, b.ipStride, b.ipBase)
	}

	return b.diagCfg.Validate()
}

// Build creates a machine.
func (b MachineBuilder) Build(name string) (machine.Machine, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	resolver, err := topo.ResolverBuilder{}.
		WithChipGrid(b.boardWidth, b.boards*b.boardHeight).
		WithBoardGrid(b.boardWidth, b.boardHeight).
		WithAddressStride(b.ipStride).
		Build()
	if err != nil {
		return nil, err
	}

	m := &spinnMachine{
		Name:   name,
		Width:  b.boardWidth,
		Height: b.boards * b.boardHeight,
		Boards: b.boards,
		Chips:  make([][]*chip, b.boards*b.boardHeight),
	}

	for y := 0; y < m.Height; y++ {
		m.Chips[y] = make([]*chip, m.Width)
		for x := 0; x < m.Width; x++ {
			m.Chips[y][x] = b.buildChip(name, resolver, x, y)
		}
	}

	return m, nil
}

func (b MachineBuilder) buildChip(
	name string,
	resolver *topo.Resolver,
	x, y int,
) *chip {
	board := y / b.boardHeight
	chipName := fmt.Sprintf("%s.Chip_%d_%d", name, x, y)

	ip := b.ipBase
	ip[3] += byte(board * b.ipStride)

	c := &chip{
		X: x,
		Y: y,
		SV: &machine.SystemVars{
			ChipRaw:  topo.Coord{X: uint8(x), Y: uint8(y)}.Encode(),
			BoardRaw: topo.Coord{X: uint8(x), Y: uint8(y % b.boardHeight)}.Encode(),
			EthRaw:   topo.Coord{X: 0, Y: uint8(board * b.boardHeight)}.Encode(),
			IP:       ip,
			Heap: sdram.HeapBuilder{}.
				WithCapacity(b.sdramBytes).
				WithBase(SDRAMBase).
				Build(chipName + ".SDRAM"),
		},
	}

	// Core 0 is the monitor and does not run the application.
	for id := 1; id < b.coresPerChip; id++ {
		c.AppCores = append(c.AppCores, core.NewBuilder().
			WithEngine(b.engine).
			WithFreq(b.freq).
			WithCoreID(id).
			WithSystemVars(c.SV).
			WithResolver(resolver).
			WithConfig(b.diagCfg).
			WithLink(b.link).
			Build(fmt.Sprintf("%s.Core_%d", chipName, id)))
	}

	return c
}
