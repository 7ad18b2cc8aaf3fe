package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sdramtest/api"
	"github.com/sarchlab/sdramtest/config"
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/machine"
	"github.com/sarchlab/sdramtest/report"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	exitCode int

	configPath string
	dbPath     string
	boards     int
	words      int
	reps       int
	seedPolicy string
	dumpState  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the diagnostic on every application core",
	Args:  cobra.NoArgs,
	RunE:  runDiagnostic,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML run configuration")
	f.StringVar(&dbPath, "db", "", "SQLite database to store the run in")
	f.IntVar(&boards, "boards", 0, "number of boards")
	f.IntVar(&words, "words", 0, "buffer size per core in words")
	f.IntVar(&reps, "reps", 0, "number of read passes")
	f.StringVar(&seedPolicy, "seed-policy", "", "fixed or identity")
	f.BoolVar(&dumpState, "dump-state", false,
		"print the state of every core that did not pass")
}

func loadFile(cmd *cobra.Command) (config.File, error) {
	f := config.Defaults()

	if configPath != "" {
		var err error
		if f, err = config.Load(configPath); err != nil {
			return f, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("boards") {
		f.Machine.Boards = boards
	}

	if flags.Changed("words") {
		f.Diagnostic.BufferWords = words
	}

	if flags.Changed("reps") {
		f.Diagnostic.ReadReps = reps
	}

	if flags.Changed("seed-policy") {
		f.Diagnostic.SeedPolicy = seedPolicy
	}

	return f, f.Validate()
}

func runDiagnostic(cmd *cobra.Command, _ []string) error {
	f, err := loadFile(cmd)
	if err != nil {
		return err
	}

	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Driver")

	builder, err := config.NewMachineBuilder().
		WithEngine(engine).
		WithLink(driver).
		FromFile(f)
	if err != nil {
		return err
	}

	m, err := builder.Build("Machine")
	if err != nil {
		return err
	}

	driver.RegisterMachine(m)

	slog.Info("Run", "Boards", f.Machine.Boards,
		"Cores", len(m.Cores()), "Words", f.Diagnostic.BufferWords,
		"Reps", f.Diagnostic.ReadReps)

	runErr := driver.Run()
	results := driver.Results()

	out := cmd.OutOrStdout()
	report.WriteTable(out, "SDRAM test", results)

	if dumpState {
		dumpCores(out, m)
	}

	if dbPath != "" {
		if err := saveRun(f, results); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}

	if !report.Summarize(results).OK() {
		exitCode = 1
	}

	return nil
}

type stateDumper interface {
	PrintState(w io.Writer)
}

func dumpCores(w io.Writer, m machine.Machine) {
	for _, c := range m.Cores() {
		if s := c.Status(); s == diag.StatusPassed || s == diag.StatusSkipped {
			continue
		}

		if d, ok := c.(stateDumper); ok {
			d.PrintState(w)
		}
	}
}

func saveRun(f config.File, results []report.CoreResult) error {
	data, err := f.Marshal()
	if err != nil {
		return err
	}

	store, err := report.Open(dbPath)
	if err != nil {
		return err
	}
	atexit.Register(func() { store.Close() })

	run := report.NewRun(string(data), results)
	if err := store.SaveRun(run); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Saved run %s to %s\n", run.ID, store.Path())

	return nil
}
