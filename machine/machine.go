// Package machine defines the commonly used data structures of a machine
// made of boards of chips, each with several cores and a shared SDRAM.
package machine

import (
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/sdram"
	"github.com/sarchlab/sdramtest/topo"
)

// SystemVars are the per-chip values an application reads when it starts.
type SystemVars struct {
	// ChipRaw is the chip's position in the machine.
	ChipRaw topo.RawID

	// BoardRaw is the chip's position relative to the board's bottom-left
	// chip.
	BoardRaw topo.RawID

	// EthRaw is the position of the board's Ethernet-attached chip.
	EthRaw topo.RawID

	// IP is the address of the board.
	IP topo.IPv4

	// Heap is the chip's shared SDRAM heap.
	Heap *sdram.Heap
}

// RawInputs returns what a core with the given id reads at start.
func (sv *SystemVars) RawInputs(coreID int) topo.RawInputs {
	return topo.RawInputs{
		CoreID:   coreID,
		ChipRaw:  sv.ChipRaw,
		BoardRaw: sv.BoardRaw,
		EthRaw:   sv.EthRaw,
		IP:       sv.IP,
	}
}

// AppCore is a core running the diagnostic application.
type AppCore interface {
	Name() string
	CoreID() int

	// Start schedules the first step of the core.
	Start()

	Status() diag.Status
	Result() *diag.Result
}

// Chip defines a chip in the machine.
type Chip interface {
	GetChipX() int
	GetChipY() int
	SystemVars() *SystemVars
	GetCore(id int) AppCore
	Cores() []AppCore
}

// A Machine is a set of boards whose chips form one grid. Chips can be
// retrieved with GetChip(x, y).
type Machine interface {
	GetSize() (width, height int)
	NumBoards() int
	GetChip(x, y int) Chip
	Cores() []AppCore
}
