package core

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/machine"
	"github.com/sarchlab/sdramtest/sdp"
	"github.com/sarchlab/sdramtest/topo"
)

// Builder can create new cores.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	coreID   int
	sv       *machine.SystemVars
	resolver *topo.Resolver
	cfg      diag.Config
	link     sdp.Link
}

// NewBuilder returns a builder with the default diagnostic configuration.
func NewBuilder() Builder {
	return Builder{
		freq: 200 * sim.MHz,
		cfg:  diag.DefaultConfig(),
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithCoreID sets the number of the core within its chip.
func (b Builder) WithCoreID(id int) Builder {
	b.coreID = id
	return b
}

// WithSystemVars sets the chip values the core reads at boot.
func (b Builder) WithSystemVars(sv *machine.SystemVars) Builder {
	b.sv = sv
	return b
}

// WithResolver sets the topology resolver.
func (b Builder) WithResolver(r *topo.Resolver) Builder {
	b.resolver = r
	return b
}

// WithConfig sets the diagnostic configuration.
func (b Builder) WithConfig(cfg diag.Config) Builder {
	b.cfg = cfg
	return b
}

// WithLink sets where the core sends its result.
func (b Builder) WithLink(link sdp.Link) Builder {
	b.link = link
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.sv == nil || b.sv.Heap == nil {
		panic("core requires system variables with an SDRAM heap")
	}

	if b.resolver == nil {
		panic("core requires a topology resolver")
	}

	if b.link == nil {
		panic("core requires a link")
	}

	if err := b.cfg.Validate(); err != nil {
		panic("core: " + err.Error())
	}

	c := &Core{
		sv:       b.sv,
		resolver: b.resolver,
		cfg:      b.cfg,
		link:     b.link,
		console:  NewIOBuf(name + ".IOBuf"),
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.state = coreState{
		CoreID: b.coreID,
		Phase:  phaseBoot,
	}

	return c
}
