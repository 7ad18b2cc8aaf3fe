package diag

import (
	"errors"
	"fmt"

	"github.com/sarchlab/sdramtest/topo"
)

// FatalKind classifies errors that stop a core.
type FatalKind int

const (
	// FatalAllocation means the SDRAM heap could not provide the buffer.
	FatalAllocation FatalKind = iota + 1

	// FatalConfiguration means the core's topology or parameters are
	// inconsistent.
	FatalConfiguration
)

func (k FatalKind) String() string {
	switch k {
	case FatalAllocation:
		return "allocation"
	case FatalConfiguration:
		return "configuration"
	default:
		return fmt.Sprintf("FatalKind(%d)", int(k))
	}
}

// FatalError stops the core that hit it. It is never retried.
type FatalError struct {
	Kind     FatalKind
	Identity topo.Identity
	Err      error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal %s error on %s: %v", e.Kind, e.Identity, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err carries a FatalError and returns it.
func IsFatal(err error) (*FatalError, bool) {
	var fatal *FatalError
	if errors.As(err, &fatal) {
		return fatal, true
	}

	return nil, false
}

// ErrOutOfOrder is returned when a step is run before the steps it depends
// on.
var ErrOutOfOrder = errors.New("diagnostic step out of order")

// ErrBadInterval is returned for a progress interval that is not positive.
var ErrBadInterval = errors.New("progress interval must be positive")
