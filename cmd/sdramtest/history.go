package main

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/sarchlab/sdramtest/report"
	"github.com/spf13/cobra"
)

var historyDB string

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List stored runs or show the results of one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyDB, "db", "sdramtest.db",
		"SQLite database the runs are stored in")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := report.Open(historyDB)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if len(args) == 0 {
		ids, err := store.ListRuns()
		if err != nil {
			return err
		}

		for _, id := range ids {
			fmt.Fprintf(out, "%s %s\n", id, id.Time().Format("2006-01-02 15:04:05"))
		}

		return nil
	}

	id, err := xid.FromString(args[0])
	if err != nil {
		return fmt.Errorf("run id %q: %w", args[0], err)
	}

	run, err := store.LoadRun(id)
	if err != nil {
		return err
	}

	report.WriteTable(out, fmt.Sprintf("Run %s", run.ID), run.Results)

	return nil
}
