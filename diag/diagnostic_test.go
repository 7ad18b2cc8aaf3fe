package diag_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/rng"
	"github.com/sarchlab/sdramtest/sdram"
	"github.com/sarchlab/sdramtest/topo"
)

func smallConfig() diag.Config {
	cfg := diag.DefaultConfig()
	cfg.BufferWords = 1000
	cfg.ProgressInterval = 256
	cfg.ReadReps = 3
	cfg.MaxLoggedMismatches = 2

	return cfg
}

func readAll(buf *sdram.Buffer) []uint32 {
	words := make([]uint32, buf.Len())
	Expect(buf.ReadWords(0, words)).To(Succeed())

	return words
}

var _ = Describe("Fill", func() {
	var heap *sdram.Heap

	BeforeEach(func() {
		heap = sdram.HeapBuilder{}.WithCapacity(mem.MB).Build("SDRAM")
	})

	newBuffer := func(words int) *sdram.Buffer {
		blk, err := heap.Alloc(uint64(words*sdram.WordSize), 1, sdram.AllocLock)
		Expect(err).NotTo(HaveOccurred())

		return sdram.NewBuffer(blk)
	}

	It("should write the seeded sequence in index order", func() {
		buf := newBuffer(10)

		Expect(diag.Fill(buf, 35, &lineConsole{}, 4)).To(Succeed())

		g := rng.New(35)
		for i, w := range readAll(buf) {
			Expect(w).To(Equal(g.Uint32()), "word %d", i)
		}
	})

	It("should produce identical buffers for the same seed", func() {
		a := newBuffer(1000)
		b := newBuffer(1000)

		Expect(diag.Fill(a, 35, &lineConsole{}, 100)).To(Succeed())
		Expect(diag.Fill(b, 35, &lineConsole{}, 100)).To(Succeed())

		Expect(readAll(a)).To(Equal(readAll(b)))
	})

	It("should report progress every interval words", func() {
		console := &lineConsole{}

		Expect(diag.Fill(newBuffer(10), 35, console, 4)).To(Succeed())

		Expect(console.lines).To(Equal([]string{
			"Progress: 0", "Progress: 4", "Progress: 8",
		}))
	})

	It("should reject a progress interval that is not positive", func() {
		buf := newBuffer(10)

		Expect(diag.Fill(buf, 35, &lineConsole{}, 0)).
			To(MatchError(diag.ErrBadInterval))
		Expect(diag.Fill(buf, 35, &lineConsole{}, -4)).
			To(MatchError(diag.ErrBadInterval))
	})
})

var _ = Describe("Diagnostic", func() {
	var (
		heap    *sdram.Heap
		console *lineConsole
		cfg     diag.Config
		id      topo.Identity
	)

	BeforeEach(func() {
		heap = sdram.HeapBuilder{}.WithCapacity(mem.MB).Build("SDRAM")
		console = &lineConsole{}
		cfg = smallConfig()
		id = topo.Identity{CoreID: 5, ChipRaw: 0x0101, Chip: topo.Coord{X: 1, Y: 1}}
	})

	build := func() *diag.Diagnostic {
		return diag.Builder{}.
			WithConfig(cfg).
			WithAllocator(heap).
			WithConsole(console).
			Build(id)
	}

	It("should pass on memory that is not disturbed", func() {
		res, err := build().Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(diag.StatusPassed))
		Expect(res.Passes).To(Equal(3))
		Expect(res.PassMismatches).To(Equal([]int{0, 0, 0}))
		Expect(res.Mismatches).To(BeZero())
		Expect(res.Words).To(Equal(1000))
		Expect(res.Seed).To(Equal(uint32(35)))
		Expect(heap.NumBlocks()).To(Equal(1))
	})

	It("should count a corrupted word on every pass", func() {
		d := build()
		Expect(d.Allocate()).To(Succeed())
		Expect(d.Fill()).To(Succeed())

		w, err := d.Buffer().Word(123)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Buffer().SetWord(123, ^w)).To(Succeed())

		for d.PassesLeft() > 0 {
			Expect(d.VerifyPass()).To(Succeed())
		}

		res := d.Result()
		Expect(d.Done()).To(BeTrue())
		Expect(res.Status).To(Equal(diag.StatusFailed))
		Expect(res.PassMismatches).To(Equal([]int{1, 1, 1}))
		Expect(res.Mismatches).To(Equal(3))
		Expect(res.FirstMismatches).To(HaveLen(2))
		Expect(res.FirstMismatches[0]).To(Equal(diag.Mismatch{
			Pass: 0, Index: 123, Expected: w, Actual: ^w,
		}))
		Expect(console.lines).To(ContainElement(
			ContainSubstring("word 123 expected")))
	})

	It("should cap the logged mismatches but count all of them", func() {
		d := build()
		Expect(d.Allocate()).To(Succeed())
		Expect(d.Fill()).To(Succeed())
		Expect(d.Buffer().WriteWords(0, make([]uint32, 10))).To(Succeed())

		Expect(d.VerifyPass()).To(Succeed())

		Expect(d.Result().PassMismatches).To(Equal([]int{10}))
		Expect(d.Result().FirstMismatches).To(HaveLen(2))
	})

	It("should skip cores outside the range without touching memory", func() {
		id.CoreID = 20

		res, err := build().Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(diag.StatusSkipped))
		Expect(res.Passes).To(BeZero())
		Expect(heap.NumBlocks()).To(BeZero())
		Expect(console.lines).To(BeEmpty())
	})

	It("should abort when the heap cannot hold the buffer", func() {
		cfg.BufferWords = int(mem.MB)

		res, err := build().Run()

		fatal, ok := diag.IsFatal(err)
		Expect(ok).To(BeTrue())
		Expect(fatal.Kind).To(Equal(diag.FatalAllocation))
		Expect(res.Status).To(Equal(diag.StatusAborted))
		Expect(res.Passes).To(BeZero())
	})

	It("should refuse to fill before allocating", func() {
		err := build().Fill()

		Expect(errors.Is(err, diag.ErrOutOfOrder)).To(BeTrue())
	})

	It("should refuse to verify before filling", func() {
		d := build()
		Expect(d.Allocate()).To(Succeed())

		Expect(errors.Is(d.VerifyPass(), diag.ErrOutOfOrder)).To(BeTrue())
	})

	It("should finish right after the fill when no passes are asked for", func() {
		cfg.ReadReps = 0

		res, err := build().Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(diag.StatusPassed))
		Expect(res.Passes).To(BeZero())
	})

	It("should refuse to build with an invalid configuration", func() {
		cfg = diag.Config{CoreLimit: 16, BufferWords: 10, ReadReps: 1}

		Expect(func() { build() }).
			To(PanicWith(ContainSubstring("progress interval")))
	})

	It("should seed from the identity when asked to", func() {
		cfg.Seed = diag.IdentitySeed

		d := build()

		Expect(d.Seed()).To(Equal(uint32(0x0101 + 5)))
	})
})

var _ = Describe("Config", func() {
	It("should accept the defaults", func() {
		Expect(diag.DefaultConfig().Validate()).To(Succeed())
	})

	It("should reject a zero-size buffer", func() {
		cfg := diag.DefaultConfig()
		cfg.BufferWords = 0

		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("should reject a missing seed policy", func() {
		cfg := diag.DefaultConfig()
		cfg.Seed = nil

		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("should keep core 5 of 16 in range and core 20 out", func() {
		cfg := diag.DefaultConfig()

		Expect(cfg.InRange(5)).To(BeTrue())
		Expect(cfg.InRange(20)).To(BeFalse())
		Expect(cfg.InRange(0)).To(BeFalse())
	})
})
