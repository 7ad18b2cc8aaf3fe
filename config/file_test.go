package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/sdramtest/config"
	"github.com/sarchlab/sdramtest/topo"
)

var _ = Describe("File", func() {
	It("should describe the reference setup by default", func() {
		f := config.Defaults()

		Expect(f.Validate()).To(Succeed())
		Expect(f.Diagnostic.BufferWords).To(Equal(1750000))
		Expect(f.Diagnostic.ReadReps).To(Equal(10))
		Expect(f.Diagnostic.CoreLimit).To(Equal(16))
		Expect(f.Diagnostic.Seed).To(Equal(uint32(35)))
		Expect(f.Machine.IPStride).To(Equal(16))
	})

	It("should keep defaults for keys that are absent", func() {
		f, err := config.Parse([]byte(`
machine:
  boards: 3
diagnostic:
  buffer_words: 4096
  seed_policy: identity
`))

		Expect(err).NotTo(HaveOccurred())
		Expect(f.Machine.Boards).To(Equal(3))
		Expect(f.Machine.BoardWidth).To(Equal(2))
		Expect(f.Diagnostic.BufferWords).To(Equal(4096))
		Expect(f.Diagnostic.ReadReps).To(Equal(10))

		cfg, err := f.Diagnostic.Config()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Seed(topo.Identity{CoreID: 2, ChipRaw: 0x0100})).
			To(Equal(uint32(0x0102)))
	})

	It("should reject unknown seed policies", func() {
		_, err := config.Parse([]byte("diagnostic:\n  seed_policy: random\n"))

		Expect(err).To(MatchError(ContainSubstring("seed policy")))
	})

	It("should reject malformed addresses", func() {
		_, err := config.Parse([]byte("machine:\n  ip_base: 300.1.1.1\n"))

		Expect(err).To(HaveOccurred())
	})

	It("should reject malformed YAML", func() {
		_, err := config.Parse([]byte("machine: [1, 2"))

		Expect(err).To(HaveOccurred())
	})

	It("should load what it marshals", func() {
		f := config.Defaults()
		f.Machine.Boards = 2
		f.Diagnostic.ReadReps = 4

		data, err := f.Marshal()
		Expect(err).NotTo(HaveOccurred())

		path := filepath.Join(GinkgoT().TempDir(), "run.yaml")
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())

		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(f))
	})
})
