// Package diag implements the per-core SDRAM diagnostic: allocate a private
// buffer, fill it with a seeded pattern and re-read it a fixed number of
// times.
package diag

import (
	"fmt"

	"github.com/sarchlab/sdramtest/sdram"
	"github.com/sarchlab/sdramtest/topo"
)

// Status is the outcome of a core's run.
type Status int

const (
	StatusPending Status = iota
	StatusPassed
	StatusFailed
	StatusSkipped
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is what a core reports at the end of its run.
type Result struct {
	Identity topo.Identity
	Status   Status
	Seed     uint32
	Words    int

	Passes          int
	PassMismatches  []int
	Mismatches      int
	FirstMismatches []Mismatch

	Err error
}

type step int

const (
	stepAllocate step = iota
	stepFill
	stepVerify
	stepDone
)

// Diagnostic is the run of one core. Its steps must be taken in order:
// Allocate, Fill, then VerifyPass until Done.
type Diagnostic struct {
	cfg     Config
	pool    Allocator
	console Console

	id   topo.Identity
	seed uint32

	buf      *sdram.Buffer
	verifier *Verifier
	step     step
	result   Result
}

// Builder can build diagnostics.
type Builder struct {
	cfg     Config
	pool    Allocator
	console Console
}

// WithConfig sets the run parameters.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithAllocator sets the pool the buffer is taken from.
func (b Builder) WithAllocator(pool Allocator) Builder {
	b.pool = pool
	return b
}

// WithConsole sets where progress and errors are printed.
func (b Builder) WithConsole(con Console) Builder {
	b.console = con
	return b
}

// Build creates the diagnostic of the core with the given identity.
func (b Builder) Build(id topo.Identity) *Diagnostic {
	if b.pool == nil {
		panic("diagnostic requires an allocator")
	}

	if b.console == nil {
		panic("diagnostic requires a console")
	}

	if b.cfg.Seed == nil {
		b.cfg.Seed = FixedSeed(DefaultSeed)
	}

	if err := b.cfg.Validate(); err != nil {
		panic("diagnostic: " + err.Error())
	}

	seed := b.cfg.Seed(id)

	return &Diagnostic{
		cfg:     b.cfg,
		pool:    b.pool,
		console: b.console,
		id:      id,
		seed:    seed,
		result: Result{
			Identity: id,
			Seed:     seed,
		},
	}
}

// Identity returns the identity the diagnostic runs as.
func (d *Diagnostic) Identity() topo.Identity {
	return d.id
}

// Seed returns the seed of the core's pattern.
func (d *Diagnostic) Seed() uint32 {
	return d.seed
}

// Buffer returns the core's buffer, nil before allocation or when the core
// is out of range.
func (d *Diagnostic) Buffer() *sdram.Buffer {
	return d.buf
}

// InRange reports whether the core takes part in the test.
func (d *Diagnostic) InRange() bool {
	return d.cfg.InRange(d.id.CoreID)
}

// Done reports whether the run has finished, successfully or not.
func (d *Diagnostic) Done() bool {
	return d.step == stepDone
}

// PassesLeft returns the number of read passes still to do.
func (d *Diagnostic) PassesLeft() int {
	if d.step > stepVerify {
		return 0
	}

	return d.cfg.ReadReps - d.result.Passes
}

// Result returns the outcome so far.
func (d *Diagnostic) Result() *Result {
	return &d.result
}

// Abort ends the run with err. It is used when the core is stopped for a
// reason found outside the diagnostic, such as a topology anomaly.
func (d *Diagnostic) Abort(err error) {
	d.result.Status = StatusAborted
	d.result.Err = err
	d.step = stepDone
}

// Allocate takes the buffer from the pool. Out-of-range cores finish
// immediately as skipped.
func (d *Diagnostic) Allocate() error {
	if d.step != stepAllocate {
		return fmt.Errorf("%w: allocate after step %d", ErrOutOfOrder, d.step)
	}

	if !d.InRange() {
		d.result.Status = StatusSkipped
		d.step = stepDone

		return nil
	}

	buf, err := Allocate(d.pool, d.cfg, d.id, d.console)
	if err != nil {
		d.Abort(err)
		return err
	}

	d.buf = buf
	d.result.Words = buf.Len()
	d.step = stepFill

	return nil
}

// Fill writes the pattern into the buffer.
func (d *Diagnostic) Fill() error {
	if d.step != stepFill {
		return fmt.Errorf("%w: fill at step %d", ErrOutOfOrder, d.step)
	}

	if err := Fill(d.buf, d.seed, d.console, d.cfg.ProgressInterval); err != nil {
		d.Abort(err)
		return err
	}

	d.verifier = NewVerifier(d.buf, d.seed, d.id, d.console, d.cfg)
	d.step = stepVerify
	d.finishIfNoPassesLeft()

	return nil
}

// VerifyPass performs the next read pass.
func (d *Diagnostic) VerifyPass() error {
	if d.step != stepVerify {
		return fmt.Errorf("%w: verify at step %d", ErrOutOfOrder, d.step)
	}

	pass, err := d.verifier.Pass(d.result.Passes)
	if err != nil {
		d.Abort(err)
		return err
	}

	d.result.Passes++
	d.result.PassMismatches = append(d.result.PassMismatches, pass.Mismatches)
	d.result.Mismatches += pass.Mismatches

	room := d.cfg.MaxLoggedMismatches - len(d.result.FirstMismatches)
	if room > 0 {
		d.result.FirstMismatches = append(d.result.FirstMismatches,
			pass.Logged[:min(room, len(pass.Logged))]...)
	}

	d.finishIfNoPassesLeft()

	return nil
}

func (d *Diagnostic) finishIfNoPassesLeft() {
	if d.result.Passes < d.cfg.ReadReps {
		return
	}

	d.step = stepDone
	d.result.Status = StatusPassed

	if d.result.Mismatches > 0 {
		d.result.Status = StatusFailed
		d.console.Printf("%d mismatches in %d passes", d.result.Mismatches,
			d.result.Passes)
	}
}

// Run takes every remaining step in order and returns the result. The error
// is the one that aborted the run, if any.
func (d *Diagnostic) Run() (*Result, error) {
	for !d.Done() {
		var err error

		switch d.step {
		case stepAllocate:
			err = d.Allocate()
		case stepFill:
			err = d.Fill()
		case stepVerify:
			err = d.VerifyPass()
		}

		if err != nil {
			return &d.result, err
		}
	}

	return &d.result, nil
}
