// Package api defines the host side of a diagnostic run: the driver that
// starts every core and collects what they report.
package api

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/machine"
	"github.com/sarchlab/sdramtest/report"
	"github.com/sarchlab/sdramtest/sdp"
	"github.com/sarchlab/sdramtest/topo"
)

// ErrNoMachine is returned when running a driver without a machine.
var ErrNoMachine = errors.New("no machine registered")

// Errors returned by Run when the reports do not match the cores.
var (
	ErrMissingReport    = errors.New("core did not report")
	ErrDuplicateReport  = errors.New("core reported more than once")
	ErrUnexpectedReport = errors.New("report from a core that should not report")
)

// Driver provides the interface to control a diagnostic run.
type Driver interface {
	// Deliver hands a message from a core to the driver. The message is
	// decoded on the driver's next tick.
	sdp.Link

	// RegisterMachine adds a machine whose cores are started by Run.
	RegisterMachine(m machine.Machine)

	// Run starts every core and runs the engine until no event is left.
	Run() error

	// Results returns what the cores reported, sorted by board, chip and
	// core.
	Results() []report.CoreResult
}

type driverImpl struct {
	*sim.TickingComponent

	machines []machine.Machine
	inbox    []*sdp.Msg
	results  []report.CoreResult
	errs     []error
}

func (d *driverImpl) RegisterMachine(m machine.Machine) {
	d.machines = append(d.machines, m)
}

func (d *driverImpl) Deliver(msg *sdp.Msg) error {
	if msg == nil {
		return fmt.Errorf("nil message")
	}

	d.inbox = append(d.inbox, msg)
	d.TickLater()

	return nil
}

// Tick decodes the messages received since the last tick.
func (d *driverImpl) Tick() (madeProgress bool) {
	if len(d.inbox) == 0 {
		return false
	}

	for _, msg := range d.inbox {
		d.receive(msg)
	}

	d.inbox = d.inbox[:0]

	return true
}

func (d *driverImpl) receive(msg *sdp.Msg) {
	r, err := report.FromMessage(msg)
	if err != nil {
		slog.Warn("Dropping message", "Driver", d.Name(), "Msg", msg.String(),
			"Error", err)
		d.errs = append(d.errs, err)

		return
	}

	slog.Debug("Result",
		"Driver", d.Name(),
		"Time", float64(d.Engine.CurrentTime()*1e9),
		"Board", r.BoardNumber,
		"Chip", r.Chip.String(),
		"Core", r.CoreID,
		"Status", r.Status.String(),
		"Mismatches", r.Mismatches,
	)

	d.results = append(d.results, r)
}

func (d *driverImpl) Run() error {
	if len(d.machines) == 0 {
		return ErrNoMachine
	}

	for _, m := range d.machines {
		for _, c := range m.Cores() {
			c.Start()
		}
	}

	if err := d.Engine.Run(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	return errors.Join(append(d.errs, d.checkReports()...)...)
}

type coreKey struct {
	chip topo.RawID
	core int
}

// checkReports matches every result to the core it came from. Each core
// that was not skipped must report exactly once.
func (d *driverImpl) checkReports() []error {
	reported := make(map[coreKey]int)
	for _, r := range d.results {
		reported[coreKey{chip: r.Chip.Encode(), core: r.CoreID}]++
	}

	var errs []error

	known := make(map[coreKey]bool)
	for _, m := range d.machines {
		w, h := m.GetSize()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				chip := m.GetChip(x, y)
				raw := chip.SystemVars().ChipRaw

				for _, c := range chip.Cores() {
					k := coreKey{chip: raw, core: c.CoreID()}
					known[k] = true
					errs = append(errs, checkCore(k, reported[k], c.Status())...)
				}
			}
		}
	}

	for _, r := range d.results {
		k := coreKey{chip: r.Chip.Encode(), core: r.CoreID}
		if !known[k] {
			errs = append(errs, fmt.Errorf("%w: chip %s core %d",
				ErrUnexpectedReport, k.chip, k.core))
			known[k] = true
		}
	}

	return errs
}

func checkCore(k coreKey, n int, status diag.Status) []error {
	switch {
	case status == diag.StatusSkipped && n > 0:
		return []error{fmt.Errorf("%w: skipped chip %s core %d",
			ErrUnexpectedReport, k.chip, k.core)}
	case status == diag.StatusSkipped:
		return nil
	case n == 0:
		return []error{fmt.Errorf("%w: chip %s core %d",
			ErrMissingReport, k.chip, k.core)}
	case n > 1:
		return []error{fmt.Errorf("%w: chip %s core %d reported %d times",
			ErrDuplicateReport, k.chip, k.core, n)}
	}

	return nil
}

func (d *driverImpl) Results() []report.CoreResult {
	results := append([]report.CoreResult(nil), d.results...)
	report.Sort(results)

	return results
}
