// Command sdramtest runs the SDRAM diagnostic on every application core of a
// simulated machine and reports the result of each core.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/sdramtest/core"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "sdramtest",
	Short: "SDRAM diagnostic for a simulated multi-board machine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: level})))

		return nil
	},
	SilenceUsage: true,
}

func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return core.LevelTrace, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}

	return level, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"debug, info, trace, warn or error")
	rootCmd.AddCommand(runCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(exitCode)
}
