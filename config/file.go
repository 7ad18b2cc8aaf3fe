package config

import (
	"fmt"
	"net/netip"
	"os"

	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/sdram"
	"github.com/sarchlab/sdramtest/topo"
	"gopkg.in/yaml.v3"
)

// Seed policy names accepted in a file.
const (
	SeedPolicyFixed    = "fixed"
	SeedPolicyIdentity = "identity"
)

// File is the YAML document that describes a run.
type File struct {
	Machine    MachineSection    `yaml:"machine"`
	Diagnostic DiagnosticSection `yaml:"diagnostic"`
}

// MachineSection describes the simulated hardware.
type MachineSection struct {
	Boards       int    `yaml:"boards"`
	BoardWidth   int    `yaml:"board_width"`
	BoardHeight  int    `yaml:"board_height"`
	CoresPerChip int    `yaml:"cores_per_chip"`
	SDRAMBytes   uint64 `yaml:"sdram_bytes"`
	IPBase       string `yaml:"ip_base"`
	IPStride     int    `yaml:"ip_stride"`
	FreqMHz      int    `yaml:"freq_mhz"`
}

// DiagnosticSection describes what every core does.
type DiagnosticSection struct {
	CoreLimit           int    `yaml:"core_limit"`
	BufferWords         int    `yaml:"buffer_words"`
	ReadReps            int    `yaml:"read_reps"`
	ProgressInterval    int    `yaml:"progress_interval"`
	MaxLoggedMismatches int    `yaml:"max_logged_mismatches"`
	SeedPolicy          string `yaml:"seed_policy"`
	Seed                uint32 `yaml:"seed"`
}

// Defaults returns the configuration of the reference setup.
func Defaults() File {
	return File{
		Machine: MachineSection{
			Boards:       1,
			BoardWidth:   2,
			BoardHeight:  2,
			CoresPerChip: 18,
			SDRAMBytes:   sdram.DefaultCapacity,
			IPBase:       "192.168.240.1",
			IPStride:     topo.DefaultAddressStride,
			FreqMHz:      200,
		},
		Diagnostic: DiagnosticSection{
			CoreLimit:           diag.DefaultCoreLimit,
			BufferWords:         diag.DefaultBufferWords,
			ReadReps:            diag.DefaultReadReps,
			ProgressInterval:    diag.DefaultProgressInterval,
			MaxLoggedMismatches: diag.DefaultMaxLoggedMismatches,
			SeedPolicy:          SeedPolicyFixed,
			Seed:                diag.DefaultSeed,
		},
	}
}

// Parse reads a YAML document. Keys that are absent keep their default.
func Parse(data []byte) (File, error) {
	f := Defaults()

	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := f.Validate(); err != nil {
		return File{}, err
	}

	return f, nil
}

// Load reads and parses a YAML file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading config: %w", err)
	}

	return Parse(data)
}

// Marshal renders the file as YAML.
func (f File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Validate checks both sections.
func (f File) Validate() error {
	if err := f.Machine.Validate(); err != nil {
		return fmt.Errorf("machine: %w", err)
	}

	if _, err := f.Diagnostic.Config(); err != nil {
		return fmt.Errorf("diagnostic: %w", err)
	}

	return nil
}

// Validate checks the machine section.
func (m MachineSection) Validate() error {
	if m.Boards <= 0 {
		return fmt.Errorf("boards %d must be positive", m.Boards)
	}

	if m.BoardWidth <= 0 || m.BoardHeight <= 0 {
		return fmt.Errorf("board size %dx%d must be positive",
			m.BoardWidth, m.BoardHeight)
	}

	if m.CoresPerChip <= 0 {
		return fmt.Errorf("cores per chip %d must be positive", m.CoresPerChip)
	}

	if m.SDRAMBytes == 0 {
		return fmt.Errorf("sdram bytes must be positive")
	}

	if m.IPStride <= 0 {
		return fmt.Errorf("ip stride %d must be positive", m.IPStride)
	}

	if m.FreqMHz <= 0 {
		return fmt.Errorf("frequency %d MHz must be positive", m.FreqMHz)
	}

	_, err := m.ParseIPBase()

	return err
}

// ParseIPBase returns the address of the first board.
func (m MachineSection) ParseIPBase() (topo.IPv4, error) {
	addr, err := netip.ParseAddr(m.IPBase)
	if err != nil {
		return topo.IPv4{}, fmt.Errorf("ip base: %w", err)
	}

	if !addr.Is4() {
		return topo.IPv4{}, fmt.Errorf("ip base %s is not IPv4", m.IPBase)
	}

	return topo.IPv4(addr.As4()), nil
}

// Config turns the section into a diagnostic configuration.
func (d DiagnosticSection) Config() (diag.Config, error) {
	cfg := diag.Config{
		CoreLimit:           d.CoreLimit,
		BufferWords:         d.BufferWords,
		ReadReps:            d.ReadReps,
		ProgressInterval:    d.ProgressInterval,
		MaxLoggedMismatches: d.MaxLoggedMismatches,
	}

	switch d.SeedPolicy {
	case SeedPolicyFixed, "":
		cfg.Seed = diag.FixedSeed(d.Seed)
	case SeedPolicyIdentity:
		cfg.Seed = diag.IdentitySeed
	default:
		return diag.Config{}, fmt.Errorf("unknown seed policy %q", d.SeedPolicy)
	}

	if err := cfg.Validate(); err != nil {
		return diag.Config{}, err
	}

	return cfg, nil
}
