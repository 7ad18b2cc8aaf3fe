// Package rng provides the deterministic generator used to produce SDRAM
// test patterns.
package rng

// Initial state of a JKISS generator. Seeding replaces x only.
const (
	initX uint32 = 123456789
	initY uint32 = 987654321
	initZ uint32 = 43219876
	initC uint32 = 6543217
)

// JKISS is David Jones' KISS generator: a linear congruential part, a 32-bit
// xorshift part and a multiply-with-carry part summed together. The same
// seed always yields the same sequence.
type JKISS struct {
	x, y, z, c uint32
}

// New returns a generator seeded with seed.
func New(seed uint32) *JKISS {
	g := &JKISS{}
	g.Seed(seed)

	return g
}

// Seed resets the generator to the state reached after seeding.
func (g *JKISS) Seed(seed uint32) {
	g.x = seed
	g.y = initY
	g.z = initZ
	g.c = initC
}

// Uint32 returns the next word of the sequence.
func (g *JKISS) Uint32() uint32 {
	g.x = 314527869*g.x + 1234567

	g.y ^= g.y << 5
	g.y ^= g.y >> 7
	g.y ^= g.y << 22

	t := 4294584393*uint64(g.z) + uint64(g.c)
	g.c = uint32(t >> 32)
	g.z = uint32(t)

	return g.x + g.y + g.z
}

// Uint64 joins two consecutive words, high word first, so that a JKISS can
// serve as a math/rand/v2 Source.
func (g *JKISS) Uint64() uint64 {
	hi := uint64(g.Uint32())
	lo := uint64(g.Uint32())

	return hi<<32 | lo
}
