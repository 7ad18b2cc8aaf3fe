package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable renders one row per core followed by the summary.
func WriteTable(w io.Writer, title string, results []CoreResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{
		"Board", "Chip", "Core", "Status", "Seed", "Passes", "Mismatches",
		"Elapsed", "Fatal",
	})

	for _, r := range results {
		fatal := "-"
		if r.FatalKind != 0 {
			fatal = r.FatalKind.String()
		}

		t.AppendRow(table.Row{
			r.BoardNumber,
			fmt.Sprintf("%s #%d", r.Chip, r.ChipIndex),
			r.CoreID,
			r.Status.String(),
			fmt.Sprintf("0x%08x", r.Seed),
			r.Passes,
			r.Mismatches,
			r.Elapsed.String(),
			fatal,
		})
	}

	s := Summarize(results)
	t.AppendFooter(table.Row{
		"", "", s.Cores,
		fmt.Sprintf("%d passed %d failed", s.Passed, s.Failed),
		fmt.Sprintf("%d skipped", s.Skipped),
		fmt.Sprintf("%d aborted", s.Aborted),
		s.Mismatches,
		"", "",
	})

	t.Render()
}
