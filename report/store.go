package report

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/sarchlab/sdramtest/diag"
	"github.com/sarchlab/sdramtest/sdp"
	"github.com/sarchlab/sdramtest/topo"
)

// ErrRunNotFound is returned when loading a run that was never saved.
var ErrRunNotFound = errors.New("run not found")

// Run is the set of results of one invocation.
type Run struct {
	ID      xid.ID
	Started time.Time
	Config  string
	Results []CoreResult
}

// NewRun creates a run with a fresh id.
func NewRun(config string, results []CoreResult) Run {
	id := xid.New()

	return Run{
		ID:      id,
		Started: id.Time(),
		Config:  config,
		Results: results,
	}
}

// Store keeps runs in an SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, path: path}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started DATETIME NOT NULL,
		config TEXT NOT NULL,
		cores INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		aborted INTEGER NOT NULL,
		mismatches INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS core_results (
		run_id TEXT NOT NULL,
		board INTEGER NOT NULL,
		chip_x INTEGER NOT NULL,
		chip_y INTEGER NOT NULL,
		chip_index INTEGER NOT NULL,
		board_raw INTEGER NOT NULL,
		board_index INTEGER NOT NULL,
		core INTEGER NOT NULL,
		cmd INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		status INTEGER NOT NULL,
		fatal_kind INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		words INTEGER NOT NULL,
		passes INTEGER NOT NULL,
		mismatches INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		PRIMARY KEY (run_id, board, chip_index, core),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	CREATE INDEX IF NOT EXISTS idx_core_results_status ON core_results(status);
	`

	_, err := s.db.Exec(schema)

	return err
}

// SaveRun stores a run and all of its results in one transaction.
func (s *Store) SaveRun(run Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sum := Summarize(run.Results)

	_, err = tx.Exec(`INSERT INTO runs
		(id, started, config, cores, passed, failed, skipped, aborted, mismatches)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Started.UTC(), run.Config,
		sum.Cores, sum.Passed, sum.Failed, sum.Skipped, sum.Aborted,
		sum.Mismatches)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO core_results
		(run_id, board, chip_x, chip_y, chip_index, board_raw, board_index,
		core, cmd, seq, status, fatal_kind, seed, words, passes, mismatches,
		elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range run.Results {
		_, err = stmt.Exec(run.ID.String(),
			r.BoardNumber, r.Chip.X, r.Chip.Y, r.ChipIndex,
			uint16(r.BoardRaw), r.BoardIndex,
			r.CoreID, uint16(r.Cmd), r.Seq, int(r.Status), int(r.FatalKind),
			r.Seed, r.Words, r.Passes, r.Mismatches, r.Elapsed.Nanoseconds())
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", r, err)
		}
	}

	return tx.Commit()
}

// LoadRun reads back a run saved with SaveRun. Results come sorted by
// board, chip and core.
func (s *Store) LoadRun(id xid.ID) (Run, error) {
	run := Run{ID: id}

	err := s.db.QueryRow(`SELECT started, config FROM runs WHERE id = ?`,
		id.String()).Scan(&run.Started, &run.Config)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query run %s: %w", id, err)
	}

	rows, err := s.db.Query(`SELECT
		board, chip_x, chip_y, chip_index, board_raw, board_index, core,
		cmd, seq, status, fatal_kind, seed, words, passes, mismatches,
		elapsed_ns
		FROM core_results WHERE run_id = ?
		ORDER BY board, chip_index, core`, id.String())
	if err != nil {
		return Run{}, fmt.Errorf("failed to query results of %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r             CoreResult
			x, y          uint8
			boardRaw, cmd uint16
			status, fatal int
			elapsed       int64
		)

		err := rows.Scan(&r.BoardNumber, &x, &y, &r.ChipIndex, &boardRaw,
			&r.BoardIndex, &r.CoreID, &cmd, &r.Seq, &status, &fatal,
			&r.Seed, &r.Words, &r.Passes, &r.Mismatches, &elapsed)
		if err != nil {
			return Run{}, fmt.Errorf("failed to scan result: %w", err)
		}

		r.Chip = topo.Coord{X: x, Y: y}
		r.BoardRaw = topo.RawID(boardRaw)
		r.Cmd = sdp.Command(cmd)
		r.Status = diag.Status(status)
		r.FatalKind = diag.FatalKind(fatal)
		r.Elapsed = time.Duration(elapsed)

		run.Results = append(run.Results, r)
	}

	return run, rows.Err()
}

// ListRuns returns the ids of every stored run, oldest first.
func (s *Store) ListRuns() ([]xid.ID, error) {
	rows, err := s.db.Query(`SELECT id FROM runs ORDER BY started, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var ids []xid.ID
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan run id: %w", err)
		}

		id, err := xid.FromString(s)
		if err != nil {
			return nil, fmt.Errorf("bad run id %q: %w", s, err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}
