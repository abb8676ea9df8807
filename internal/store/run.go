package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is how a level attempt ended.
type Outcome string

const (
	OutcomeWin      Outcome = "win"
	OutcomeLose     Outcome = "lose"
	OutcomeComplete Outcome = "complete"
)

// Run is one finished level attempt.
type Run struct {
	ID         string    `json:"id"`
	Level      int       `json:"level"`
	Score      int       `json:"score"`
	Lives      int       `json:"lives"`
	Outcome    Outcome   `json:"outcome"`
	Completed  []int     `json:"completed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// RunRepository records and queries runs.
type RunRepository struct {
	db *sql.DB
}

// Runs returns the run repository for this store.
func (s *Store) Runs() *RunRepository {
	return &RunRepository{db: s.db}
}

const runColumns = `id, level, score, lives, outcome, completed_levels, started_at, finished_at`

// Create inserts a run. An empty ID is filled with a new UUID and a zero
// FinishedAt with the current time.
func (r *RunRepository) Create(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}
	if run.Completed == nil {
		run.Completed = []int{}
	}

	completed, err := json.Marshal(run.Completed)
	if err != nil {
		return fmt.Errorf("marshal completed levels: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Level, run.Score, run.Lives, string(run.Outcome), string(completed),
		run.StartedAt.UTC(), run.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(id string) (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// List returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (r *RunRepository) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY finished_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// BestByLevel returns the highest-scoring run of each level, ordered by
// level. Ties go to the earliest run.
func (r *RunRepository) BestByLevel() ([]*Run, error) {
	rows, err := r.db.Query(
		`SELECT ` + runColumns + ` FROM runs ORDER BY level ASC, score DESC, finished_at ASC, rowid ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all, err := collect(rows)
	if err != nil {
		return nil, err
	}

	best := []*Run{}
	for _, run := range all {
		if len(best) > 0 && best[len(best)-1].Level == run.Level {
			continue
		}
		best = append(best, run)
	}
	return best, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	run := &Run{}
	var outcome, completed string
	err := row.Scan(&run.ID, &run.Level, &run.Score, &run.Lives, &outcome, &completed, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		return nil, err
	}
	run.Outcome = Outcome(outcome)
	if err := json.Unmarshal([]byte(completed), &run.Completed); err != nil {
		return nil, fmt.Errorf("decode completed levels of run %s: %w", run.ID, err)
	}
	return run, nil
}

func collect(rows *sql.Rows) ([]*Run, error) {
	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
