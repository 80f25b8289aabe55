package db

import (
	"database/sql"
	"time"
)

// Run is one invocation of the scorer.
type Run struct {
	ID             int64
	Input          string
	Lexicon        string
	PositiveTokens int
	NegativeTokens int
	StartedAt      time.Time
	FinishedAt     sql.NullTime
	Documents      int
	MeanScore      sql.NullFloat64
	StdDevScore    sql.NullFloat64
	MinScore       sql.NullFloat64
	MaxScore       sql.NullFloat64
}

// RunStats are the aggregate figures recorded when a run finishes.
type RunStats struct {
	Documents int
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
}

// Score is one scored document of a run.
type Score struct {
	ID       int64
	RunID    int64
	Position int
	DocID    string
	Source   string
	Text     string
	DateRaw  string
	DateISO  sql.NullString // yyyy-mm-dd when the raw date parsed
	Cleaned  bool
	Positive int
	Negative int
	Score    float64
}
