package db

// migrate creates the schema if it does not exist.
func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		description  TEXT NOT NULL,
		project      TEXT NOT NULL DEFAULT '',
		scheduled_at TEXT NOT NULL,
		end_at       TEXT,
		completed    INTEGER NOT NULL DEFAULT 0,
		active       INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_scheduled_at ON tasks(scheduled_at);
	`
	_, err := s.db.Exec(schema)
	return err
}
