package diag

import (
	"fmt"

	"github.com/sarchlab/sdramtest/rng"
	"github.com/sarchlab/sdramtest/sdram"
	"github.com/sarchlab/sdramtest/topo"
)

// Mismatch is a word that did not read back as written.
type Mismatch struct {
	Pass     int
	Index    int
	Expected uint32
	Actual   uint32
}

// PassResult summarises one read pass.
type PassResult struct {
	Mismatches int
	Logged     []Mismatch
}

// Verifier re-reads a filled buffer and compares every word with the
// sequence Fill wrote, replayed from the same seed.
type Verifier struct {
	buf       *sdram.Buffer
	seed      uint32
	id        topo.Identity
	con       Console
	interval  int
	maxLogged int

	gen      *rng.JKISS
	expected []uint32
	actual   []uint32
}

// NewVerifier creates a verifier for a buffer filled with seed.
func NewVerifier(
	buf *sdram.Buffer,
	seed uint32,
	id topo.Identity,
	con Console,
	cfg Config,
) *Verifier {
	n := max(1, min(cfg.ProgressInterval, buf.Len()))

	return &Verifier{
		buf:       buf,
		seed:      seed,
		id:        id,
		con:       con,
		interval:  cfg.ProgressInterval,
		maxLogged: cfg.MaxLoggedMismatches,
		gen:       rng.New(seed),
		expected:  make([]uint32, n),
		actual:    make([]uint32, n),
	}
}

// Pass performs one full read of the buffer. Mismatches never stop the pass.
func (v *Verifier) Pass(pass int) (PassResult, error) {
	res := PassResult{}
	v.gen.Seed(v.seed)

	for i := 0; i < v.buf.Len(); i += len(v.expected) {
		n := min(len(v.expected), v.buf.Len()-i)

		for j := 0; j < n; j++ {
			v.expected[j] = v.gen.Uint32()
		}

		if err := v.buf.ReadWords(i, v.actual[:n]); err != nil {
			return res, fmt.Errorf("pass %d reading word %d: %w", pass, i, err)
		}

		for j := 0; j < n; j++ {
			if v.actual[j] != v.expected[j] {
				v.record(&res, Mismatch{
					Pass:     pass,
					Index:    i + j,
					Expected: v.expected[j],
					Actual:   v.actual[j],
				})
			}
		}
	}

	return res, nil
}

func (v *Verifier) record(res *PassResult, m Mismatch) {
	res.Mismatches++

	if len(res.Logged) >= v.maxLogged {
		return
	}

	res.Logged = append(res.Logged, m)
	v.con.Printf("Mismatch: pass %d word %d expected 0x%08x read 0x%08x on chip %s core %d",
		m.Pass, m.Index, m.Expected, m.Actual, v.id.Chip, v.id.CoreID)
}
