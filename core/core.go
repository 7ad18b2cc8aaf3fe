// Package core simulates an application core that runs the SDRAM diagnostic
// one step per tick.
package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/machine"
	"github.com/sarchlab/sdramtest/sdp"
	"github.com/sarchlab/sdramtest/topo"
)

type phase int

const (
	phaseBoot phase = iota
	phaseAllocate
	phaseFill
	phaseVerify
	phaseReport
	phaseDone
)

func (p phase) String() string {
	return [...]string{"Boot", "Allocate", "Fill", "Verify", "Report", "Done"}[p]
}

type coreState struct {
	CoreID int
	Phase  phase
	Ticks  int

	StartTime sim.VTimeInSec
	Identity  topo.Identity
	Diag      *diag.Diagnostic
	Header    sdp.MsgBuilder
	Seq       uint16
}

// Core is an application core of a chip.
type Core struct {
	*sim.TickingComponent

	sv       *machine.SystemVars
	resolver *topo.Resolver
	cfg      diag.Config
	link     sdp.Link
	console  *IOBuf

	state coreState
}

// CoreID returns the number of the core within its chip.
func (c *Core) CoreID() int {
	return c.state.CoreID
}

// Console returns the IO buffer the core prints to.
func (c *Core) Console() *IOBuf {
	return c.console
}

// Start schedules the first tick of the core.
func (c *Core) Start() {
	c.TickNow()
}

// Status returns where the diagnostic of the core stands.
func (c *Core) Status() diag.Status {
	if c.state.Diag == nil {
		return diag.StatusPending
	}

	return c.state.Diag.Result().Status
}

// Result returns the diagnostic result, nil before the core has booted.
func (c *Core) Result() *diag.Result {
	if c.state.Diag == nil {
		return nil
	}

	return c.state.Diag.Result()
}

// Tick runs one step of the diagnostic.
func (c *Core) Tick() (madeProgress bool) {
	if c.state.Phase == phaseDone {
		return false
	}

	c.state.Ticks++

	switch c.state.Phase {
	case phaseBoot:
		c.boot()
	case phaseAllocate:
		c.allocate()
	case phaseFill:
		c.fill()
	case phaseVerify:
		c.verify()
	case phaseReport:
		c.report()
	}

	return true
}

func (c *Core) setPhase(p phase) {
	Trace("Diagnostic",
		"Behavior", "Phase",
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Core", c.Name(),
		"From", c.state.Phase.String(),
		"To", p.String(),
	)

	c.state.Phase = p
}

func (c *Core) boot() {
	c.state.StartTime = c.Engine.CurrentTime()

	id, err := c.resolver.Resolve(c.sv.RawInputs(c.state.CoreID))
	c.state.Identity = id
	c.state.Header = sdp.ReportBuilder(id)
	c.state.Diag = diag.Builder{}.
		WithConfig(c.cfg).
		WithAllocator(c.sv.Heap).
		WithConsole(c.console).
		Build(id)

	if id.IP[3] == 0 {
		c.console.Printf("Board address %s has a zero last octet", id.IP)
	}

	if err != nil {
		c.console.Printf("Topology error: %v", err)
		c.state.Diag.Abort(&diag.FatalError{
			Kind:     diag.FatalConfiguration,
			Identity: id,
			Err:      err,
		})
		c.setPhase(phaseReport)

		return
	}

	LogState(&c.state)
	c.setPhase(phaseAllocate)
}

func (c *Core) allocate() {
	err := c.state.Diag.Allocate()

	switch {
	case err != nil:
		c.setPhase(phaseReport)
	case c.state.Diag.Done():
		c.setPhase(phaseDone)
	default:
		blk := c.state.Diag.Buffer().Block()
		Trace("Memory",
			"Behavior", "Alloc",
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"Core", c.Name(),
			"Addr", fmt.Sprintf("%#x", blk.Addr()),
			"Bytes", blk.Size(),
		)
		c.setPhase(phaseFill)
	}
}

func (c *Core) fill() {
	if err := c.state.Diag.Fill(); err != nil || c.state.Diag.Done() {
		c.setPhase(phaseReport)
		return
	}

	c.setPhase(phaseVerify)
}

func (c *Core) verify() {
	err := c.state.Diag.VerifyPass()

	res := c.state.Diag.Result()
	Trace("Memory",
		"Behavior", "ReadPass",
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Core", c.Name(),
		"Pass", res.Passes,
		"Mismatches", res.Mismatches,
	)

	if err != nil || c.state.Diag.Done() {
		c.setPhase(phaseReport)
	}
}

func (c *Core) report() {
	res := c.state.Diag.Result()
	elapsed := c.Engine.CurrentTime() - c.state.StartTime

	// Only cores that got their buffer ran far enough to time.
	if c.state.Diag.Buffer() != nil {
		c.console.Printf("Sim lasted %d ticks.", c.state.Ticks)
	}

	msg := c.state.Header.
		WithPayload(c.payload(res, elapsed).Marshal()).
		Build()
	c.state.Seq++

	if err := c.link.Deliver(msg); err != nil {
		c.console.Printf("Unable to send result: %v", err)
	}

	Trace("SDP",
		"Behavior", "Send",
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Core", c.Name(),
		"Msg", msg.String(),
		"Status", res.Status.String(),
	)

	LogState(&c.state)
	c.setPhase(phaseDone)
}

func (c *Core) payload(res *diag.Result, elapsed sim.VTimeInSec) sdp.ResultPayload {
	id := c.state.Identity
	p := sdp.ResultPayload{
		Cmd:         sdp.CmdResult,
		Seq:         c.state.Seq,
		Status:      uint8(res.Status),
		BoardNumber: uint16(id.BoardNumber),
		BoardRaw:    id.BoardRaw,
		ChipIndex:   uint16(id.ChipIndex),
		BoardIndex:  uint16(id.BoardIndex),
		Passes:      uint16(res.Passes),
		Seed:        res.Seed,
		Words:       uint32(res.Words),
		Mismatches:  uint32(res.Mismatches),
		ElapsedNS:   uint64(float64(elapsed) * 1e9),
	}

	if fatal, ok := diag.IsFatal(res.Err); ok {
		p.Cmd = sdp.CmdAbort
		p.FatalKind = uint8(fatal.Kind)
	} else if res.Err != nil {
		p.Cmd = sdp.CmdAbort
	}

	return p
}
