package diag

import (
	"github.com/sarchlab/sdramtest/sdram"
	"github.com/sarchlab/sdramtest/topo"
)

// Allocator is the shared memory pool a core carves its buffer from.
type Allocator interface {
	Alloc(size uint64, tag uint8, flags sdram.AllocFlag) (*sdram.Block, error)
}

// Console is a line-oriented text sink.
type Console interface {
	Printf(format string, args ...any)
}

// Allocate requests the locked, zero-filled buffer of a core. Cores outside
// the configured range get neither a buffer nor an error. A pool failure is
// printed on the console and returned as a FatalAllocation error.
func Allocate(
	pool Allocator,
	cfg Config,
	id topo.Identity,
	con Console,
) (*sdram.Buffer, error) {
	if !cfg.InRange(id.CoreID) {
		return nil, nil
	}

	blk, err := pool.Alloc(cfg.BufferBytes(), uint8(id.CoreID), sdram.AllocLock)
	if err != nil {
		con.Printf("Unable to allocate memory!")
		con.Printf("Requested %d bytes on %s: %v", cfg.BufferBytes(), id, err)

		return nil, &FatalError{
			Kind:     FatalAllocation,
			Identity: id,
			Err:      err,
		}
	}

	return sdram.NewBuffer(blk), nil
}
