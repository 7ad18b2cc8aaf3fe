package diag

import (
	"fmt"

	"github.com/sarchlab/sdramtest/topo"
)

// Defaults of a diagnostic run.
const (
	DefaultCoreLimit           = 16
	DefaultBufferWords         = 1750000
	DefaultReadReps            = 10
	DefaultProgressInterval    = 10000
	DefaultSeed                = 35
	DefaultMaxLoggedMismatches = 16
)

// SeedPolicy derives the pattern seed of a core from its identity.
type SeedPolicy func(id topo.Identity) uint32

// FixedSeed gives every core the same seed, so every buffer holds the same
// sequence.
func FixedSeed(seed uint32) SeedPolicy {
	return func(topo.Identity) uint32 {
		return seed
	}
}

// IdentitySeed seeds each core with its chip id plus its core id, so
// patterns differ between cores of a chip and between chips.
func IdentitySeed(id topo.Identity) uint32 {
	return uint32(id.ChipRaw) + uint32(id.CoreID)
}

// Config holds the parameters shared by every core of a run.
type Config struct {
	// Cores with ids in [1, CoreLimit] take part in the test.
	CoreLimit int

	BufferWords      int
	ReadReps         int
	ProgressInterval int

	// Only the first MaxLoggedMismatches mismatches of a pass are printed
	// and kept in the result. All of them are counted.
	MaxLoggedMismatches int

	Seed SeedPolicy
}

// DefaultConfig returns the configuration of the reference test: 16 cores,
// 1,750,000 words each, ten read passes, fixed seed 35.
func DefaultConfig() Config {
	return Config{
		CoreLimit:           DefaultCoreLimit,
		BufferWords:         DefaultBufferWords,
		ReadReps:            DefaultReadReps,
		ProgressInterval:    DefaultProgressInterval,
		MaxLoggedMismatches: DefaultMaxLoggedMismatches,
		Seed:                FixedSeed(DefaultSeed),
	}
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.CoreLimit < 0 {
		return fmt.Errorf("core limit %d must not be negative", c.CoreLimit)
	}

	if c.BufferWords <= 0 {
		return fmt.Errorf("buffer words %d must be positive", c.BufferWords)
	}

	if c.ReadReps < 0 {
		return fmt.Errorf("read reps %d must not be negative", c.ReadReps)
	}

	if c.ProgressInterval <= 0 {
		return fmt.Errorf("progress interval %d must be positive",
			c.ProgressInterval)
	}

	if c.MaxLoggedMismatches < 0 {
		return fmt.Errorf("max logged mismatches %d must not be negative",
			c.MaxLoggedMismatches)
	}

	if c.Seed == nil {
		return fmt.Errorf("seed policy must be set")
	}

	return nil
}

// InRange reports whether a core takes part in the test.
func (c Config) InRange(coreID int) bool {
	return coreID >= 1 && coreID <= c.CoreLimit
}

// BufferBytes returns the allocation size of one core.
func (c Config) BufferBytes() uint64 {
	return uint64(c.BufferWords) * 4
}
