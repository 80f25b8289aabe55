// Package db archives scoring runs in SQLite.
package db

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	input TEXT NOT NULL,
	lexicon TEXT NOT NULL DEFAULT '',
	positive_tokens INTEGER NOT NULL DEFAULT 0,
	negative_tokens INTEGER NOT NULL DEFAULT 0,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	documents INTEGER NOT NULL DEFAULT 0,
	mean_score REAL,
	stddev_score REAL,
	min_score REAL,
	max_score REAL
);

CREATE TABLE IF NOT EXISTS scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	doc_id TEXT NOT NULL,
	source TEXT NOT NULL,
	text TEXT NOT NULL,
	date_raw TEXT NOT NULL DEFAULT '',
	date_iso TEXT,
	cleaned INTEGER NOT NULL DEFAULT 0,
	positive INTEGER NOT NULL,
	negative INTEGER NOT NULL,
	score REAL NOT NULL,
	UNIQUE(run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_scores_run ON scores(run_id);
`

// Open opens (creating if needed) the archive at path and migrates it.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite serialises writers; one connection keeps :memory: databases shared.
	conn.SetMaxOpenConns(1)
	if err := InitDB(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// InitDB runs migrations on the given DB connection.
func InitDB(db *sql.DB) error {
	for _, s := range strings.Split(migrationsSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
