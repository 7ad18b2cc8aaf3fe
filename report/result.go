// Package report turns the messages cores send at the end of their run into
// results, renders them and keeps them in a database.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/sdp"
	"github.com/sarchlab/sdramtest/topo"
)

// CoreResult is the outcome of one core as seen by the host.
type CoreResult struct {
	BoardNumber int
	Chip        topo.Coord
	CoreID      int
	ChipIndex   int
	BoardRaw    topo.RawID
	BoardIndex  int

	Cmd        sdp.Command
	Seq        uint16
	Status     diag.Status
	FatalKind  diag.FatalKind
	Seed       uint32
	Words      int
	Passes     int
	Mismatches int
	Elapsed    time.Duration
}

// Aborted reports whether the core stopped on a fatal error.
func (r CoreResult) Aborted() bool {
	return r.Cmd == sdp.CmdAbort || r.Status == diag.StatusAborted
}

func (r CoreResult) String() string {
	return fmt.Sprintf("board %d chip %s core %d: %s",
		r.BoardNumber, r.Chip, r.CoreID, r.Status)
}

// FromMessage decodes the result a core sent.
func FromMessage(msg *sdp.Msg) (CoreResult, error) {
	p, err := sdp.UnmarshalResultPayload(msg.Payload)
	if err != nil {
		return CoreResult{}, fmt.Errorf("message %s: %w", msg.ID, err)
	}

	return CoreResult{
		BoardNumber: int(p.BoardNumber),
		Chip:        msg.SrceAddr.Decode(),
		CoreID:      int(msg.SrcePort.CPU()),
		ChipIndex:   int(p.ChipIndex),
		BoardRaw:    p.BoardRaw,
		BoardIndex:  int(p.BoardIndex),
		Cmd:         p.Cmd,
		Seq:         p.Seq,
		Status:      diag.Status(p.Status),
		FatalKind:   diag.FatalKind(p.FatalKind),
		Seed:        p.Seed,
		Words:       int(p.Words),
		Passes:      int(p.Passes),
		Mismatches:  int(p.Mismatches),
		Elapsed:     time.Duration(p.ElapsedNS),
	}, nil
}

// Sort orders results by board, chip and core.
func Sort(results []CoreResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		if a.BoardNumber != b.BoardNumber {
			return a.BoardNumber < b.BoardNumber
		}

		if a.ChipIndex != b.ChipIndex {
			return a.ChipIndex < b.ChipIndex
		}

		return a.CoreID < b.CoreID
	})
}

// Summary counts results by outcome.
type Summary struct {
	Cores      int
	Passed     int
	Failed     int
	Skipped    int
	Aborted    int
	Mismatches int
}

// OK reports whether no core failed or aborted.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Aborted == 0
}

// Summarize counts the results.
func Summarize(results []CoreResult) Summary {
	s := Summary{Cores: len(results)}

	for _, r := range results {
		s.Mismatches += r.Mismatches

		switch {
		case r.Aborted():
			s.Aborted++
		case r.Status == diag.StatusPassed:
			s.Passed++
		case r.Status == diag.StatusFailed:
			s.Failed++
		case r.Status == diag.StatusSkipped:
			s.Skipped++
		}
	}

	return s
}
