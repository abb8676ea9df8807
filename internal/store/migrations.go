package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// One row per finished level attempt
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level INTEGER NOT NULL CHECK(level BETWEEN 1 AND 3),
			score INTEGER NOT NULL DEFAULT 0,
			lives INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL CHECK(outcome IN ('win', 'lose', 'complete')),
			completed_levels TEXT NOT NULL DEFAULT '[]',
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_level_score ON runs(level, score)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
