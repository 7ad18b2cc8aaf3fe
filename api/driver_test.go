package api_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sdramtest/api"
	"github.com/sarchlab/sdramtest/config"
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/report"
	"github.com/sarchlab/sdramtest/topo"
)

var _ = Describe("Driver on a machine", func() {
	It("should collect one result per core in range", func() {
		engine := sim.NewSerialEngine()
		driver := api.DriverBuilder{}.
			WithEngine(engine).
			Build("Driver")

		cfg := diag.DefaultConfig()
		cfg.CoreLimit = 3
		cfg.BufferWords = 64
		cfg.ReadReps = 2

		m, err := config.NewMachineBuilder().
			WithEngine(engine).
			WithBoards(2).
			WithBoardSize(2, 2).
			WithCoresPerChip(5).
			WithSDRAMBytes(64 * mem.KB).
			WithDiagnostic(cfg).
			WithLink(driver).
			Build("Machine")
		Expect(err).NotTo(HaveOccurred())

		driver.RegisterMachine(m)
		Expect(driver.Run()).To(Succeed())

		results := driver.Results()
		Expect(results).To(HaveLen(24))
		Expect(results[0].BoardNumber).To(Equal(0))
		Expect(results[0].Chip).To(Equal(topo.Coord{X: 0, Y: 0}))
		Expect(results[0].CoreID).To(Equal(1))
		Expect(results[23].BoardNumber).To(Equal(1))

		s := report.Summarize(results)
		Expect(s.OK()).To(BeTrue())
		Expect(s.Passed).To(Equal(24))
		Expect(s.Mismatches).To(Equal(0))
	})
})
