package diag

import (
	"fmt"

	"github.com/sarchlab/sdramtest/rng"
	"github.com/sarchlab/sdramtest/sdram"
)

// Fill writes the seeded sequence into the buffer, word 0 first. Progress is
// printed every interval words.
func Fill(buf *sdram.Buffer, seed uint32, con Console, interval int) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %d", ErrBadInterval, interval)
	}

	g := rng.New(seed)
	chunk := make([]uint32, min(interval, buf.Len()))

	for i := 0; i < buf.Len(); i += len(chunk) {
		n := min(len(chunk), buf.Len()-i)

		if i%interval == 0 {
			con.Printf("Progress: %d", i)
		}

		for j := 0; j < n; j++ {
			chunk[j] = g.Uint32()
		}

		if err := buf.WriteWords(i, chunk[:n]); err != nil {
			return fmt.Errorf("filling word %d: %w", i, err)
		}
	}

	return nil
}
