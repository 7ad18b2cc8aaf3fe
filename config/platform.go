package config

import (
	"fmt"

	"github.com/sarchlab/sdramtest/core"
	"github.com/sarchlab/sdramtest/machine"
)

type chip struct {
	X, Y     int
	SV       *machine.SystemVars
	AppCores []*core.Core
}

func (c *chip) GetChipX() int {
	return c.X
}

func (c *chip) GetChipY() int {
	return c.Y
}

func (c *chip) String() string {
	return fmt.Sprintf("Chip(%d, %d)", c.X, c.Y)
}

// SystemVars returns the values the chip's cores read at boot.
func (c *chip) SystemVars() *machine.SystemVars {
	return c.SV
}

// GetCore returns the application core with the given id, nil when the chip
// has no such core.
func (c *chip) GetCore(id int) machine.AppCore {
	for _, ac := range c.AppCores {
		if ac.CoreID() == id {
			return ac
		}
	}

	return nil
}

// Cores returns the application cores of the chip.
func (c *chip) Cores() []machine.AppCore {
	cores := make([]machine.AppCore, 0, len(c.AppCores))
	for _, ac := range c.AppCores {
		cores = append(cores, ac)
	}

	return cores
}

// A spinnMachine is a set of boards. Chips can be retrieved using
// m.Chips[y][x].
type spinnMachine struct {
	Name          string
	Width, Height int
	Boards        int
	Chips         [][]*chip
}

// GetSize returns the width and height of the chip grid.
func (m *spinnMachine) GetSize() (int, int) {
	return m.Width, m.Height
}

// NumBoards returns the number of boards.
func (m *spinnMachine) NumBoards() int {
	return m.Boards
}

// GetChip returns the chip at the given coordinates.
func (m *spinnMachine) GetChip(x, y int) machine.Chip {
	return m.Chips[y][x]
}

// Cores returns every application core, chip by chip in row order.
func (m *spinnMachine) Cores() []machine.AppCore {
	cores := make([]machine.AppCore, 0)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cores = append(cores, m.Chips[y][x].Cores()...)
		}
	}

	return cores
}
