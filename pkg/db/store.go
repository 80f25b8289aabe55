package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// CreateRun inserts a run row and returns its id.
func CreateRun(db DBExecutor, r Run) (int64, error) {
	if strings.TrimSpace(r.Input) == "" {
		return 0, fmt.Errorf("input must be non-empty")
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	res, err := db.Exec(
		`INSERT INTO runs (input, lexicon, positive_tokens, negative_tokens, started_at) VALUES (?, ?, ?, ?, ?)`,
		r.Input, r.Lexicon, r.PositiveTokens, r.NegativeTokens, r.StartedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun stamps a run with its finish time and statistics. The score
// columns stay NULL for a run without documents.
func FinishRun(db DBExecutor, runID int64, stats RunStats, finishedAt time.Time) error {
	if runID <= 0 {
		return fmt.Errorf("runID must be positive")
	}
	var mean, stddev, lo, hi interface{}
	if stats.Documents > 0 {
		mean, stddev, lo, hi = stats.Mean, stats.StdDev, stats.Min, stats.Max
	}
	res, err := db.Exec(`UPDATE runs SET finished_at = ?, documents = ?,
		mean_score = ?, stddev_score = ?, min_score = ?, max_score = ?
		WHERE id = ?`,
		finishedAt.UTC(), stats.Documents, mean, stddev, lo, hi, runID)
	if err != nil {
		return fmt.Errorf("update run %d: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %d not found", runID)
	}
	return nil
}

// InsertScore stores one scored document. Writing the same run position
// twice keeps the latest values.
func InsertScore(db DBExecutor, s Score) error {
	if s.RunID <= 0 {
		return fmt.Errorf("runID must be positive")
	}
	if s.Position < 0 {
		return fmt.Errorf("position must not be negative, got %d", s.Position)
	}
	_, err := db.Exec(`INSERT INTO scores
		(run_id, position, doc_id, source, text, date_raw, date_iso, cleaned, positive, negative, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, position) DO UPDATE SET
			doc_id = excluded.doc_id,
			source = excluded.source,
			text = excluded.text,
			date_raw = excluded.date_raw,
			date_iso = excluded.date_iso,
			cleaned = excluded.cleaned,
			positive = excluded.positive,
			negative = excluded.negative,
			score = excluded.score`,
		s.RunID, s.Position, s.DocID, s.Source, s.Text, s.DateRaw, s.DateISO, s.Cleaned, s.Positive, s.Negative, s.Score)
	if err != nil {
		return fmt.Errorf("insert score %q: %w", s.DocID, err)
	}
	return nil
}

// GetRun loads a run by id.
func GetRun(db DBExecutor, runID int64) (Run, error) {
	var r Run
	err := db.QueryRow(`SELECT id, input, lexicon, positive_tokens, negative_tokens, started_at, finished_at,
		documents, mean_score, stddev_score, min_score, max_score FROM runs WHERE id = ?`, runID).Scan(
		&r.ID, &r.Input, &r.Lexicon, &r.PositiveTokens, &r.NegativeTokens, &r.StartedAt, &r.FinishedAt,
		&r.Documents, &r.MeanScore, &r.StdDevScore, &r.MinScore, &r.MaxScore)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

// GetScoresByRun returns the scores of a run in document order.
func GetScoresByRun(db DBExecutor, runID int64) ([]Score, error) {
	rows, err := db.Query(`SELECT id, run_id, position, doc_id, source, text, date_raw, date_iso, cleaned,
		positive, negative, score FROM scores WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Score
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.ID, &s.RunID, &s.Position, &s.DocID, &s.Source, &s.Text, &s.DateRaw, &s.DateISO,
			&s.Cleaned, &s.Positive, &s.Negative, &s.Score); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
