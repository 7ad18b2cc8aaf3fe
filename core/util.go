package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

func LogState(state *coreState) {
	slog.Debug("StateCheckpoint",
		"CoreID", state.CoreID,
		"Phase", state.Phase.String(),
		"Ticks", state.Ticks,
		"Chip", state.Identity.Chip.String(),
		"Board", state.Identity.BoardNumber,
	)
}

// PrintState renders the identity and progress of a core as a table.
func (c *Core) PrintState(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("State@%s", c.Name()))
	t.AppendHeader(table.Row{"Field", "Value"})

	id := c.state.Identity
	t.AppendRows([]table.Row{
		{"Phase", c.state.Phase.String()},
		{"Ticks", c.state.Ticks},
		{"Core", c.state.CoreID},
		{"Chip", fmt.Sprintf("%s %s #%d", id.ChipRaw, id.Chip, id.ChipIndex)},
		{"Board", fmt.Sprintf("%d %s #%d", id.BoardNumber, id.Board, id.BoardIndex)},
		{"IP", id.IP.String()},
		{"Status", c.Status().String()},
	})

	if res := c.Result(); res != nil {
		t.AppendRow(table.Row{"Passes", res.Passes})
		t.AppendRow(table.Row{"Mismatches", res.Mismatches})
	}

	t.Render()
}
