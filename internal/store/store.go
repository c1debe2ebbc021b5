// store.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
// Package store keeps calculation results in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/keiran-rowell/hartee-fock/internal/scf"
)

// ErrNotFound is returned for an unknown run ID.
var ErrNotFound = errors.New("store: run not found")

// Run is one stored SCF calculation.
type Run struct {
	ID         string
	Created    time.Time
	Molecule   string
	Basis      string
	Distance   float64
	Energy     float64
	Iterations int
	Converged  bool

	// History is filled by SaveRun's caller and by Store.History.
	History []scf.Record
}

// NewRun builds a Run from an SCF result.
func NewRun(molecule, basis string, distance float64, res *scf.Result) *Run {
	return &Run{
		Molecule:   molecule,
		Basis:      basis,
		Distance:   distance,
		Energy:     res.Energy,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		History:    res.History,
	}
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path (":memory:" for a private
// in-memory database).
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" a single database
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		molecule TEXT NOT NULL,
		basis TEXT NOT NULL,
		distance REAL NOT NULL,
		energy REAL NOT NULL,
		iterations INTEGER NOT NULL,
		converged INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS iterations (
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		energy REAL NOT NULL,
		delta REAL NOT NULL,
		diis_error REAL NOT NULL,
		PRIMARY KEY (run_id, step),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores run and its history in one transaction. An empty ID is
// replaced by a new UUID; a zero Created time by the current time.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Created.IsZero() {
		run.Created = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, molecule, basis, distance, energy, iterations, converged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Created.Format(time.RFC3339Nano), run.Molecule, run.Basis,
		run.Distance, run.Energy, run.Iterations, run.Converged)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, rec := range run.History {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO iterations (run_id, step, energy, delta, diis_error)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, rec.Iteration, rec.Energy, rec.Delta, rec.DIISError)
		if err != nil {
			return fmt.Errorf("failed to insert iteration %d: %w", rec.Iteration, err)
		}
	}
	return tx.Commit()
}

// Runs lists the stored runs in insertion order, without history.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, molecule, basis, distance, energy, iterations, converged
		FROM runs ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var res []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &created, &r.Molecule, &r.Basis, &r.Distance, &r.Energy, &r.Iterations, &r.Converged); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return res, nil
}

// History returns the iteration records of one run.
func (s *Store) History(ctx context.Context, id string) ([]scf.Record, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&n); err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT step, energy, delta, diis_error FROM iterations
		WHERE run_id = ? ORDER BY step
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query iterations: %w", err)
	}
	defer rows.Close()

	var res []scf.Record
	for rows.Next() {
		var rec scf.Record
		if err := rows.Scan(&rec.Iteration, &rec.Energy, &rec.Delta, &rec.DIISError); err != nil {
			return nil, fmt.Errorf("failed to scan iteration: %w", err)
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
