package output

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/japaniel/lexisent/pkg/db"
	"github.com/japaniel/lexisent/pkg/document"
	"github.com/japaniel/lexisent/pkg/sentiment"
)

// Archive records one run and its scores in a SQLite database.
type Archive struct {
	conn   *sql.DB
	bw     *db.BatchWriter
	runID  int64
	logger *slog.Logger
	next   int
}

// ArchiveOptions describe the run being archived.
type ArchiveOptions struct {
	Input          string
	Lexicon        string
	PositiveTokens int
	NegativeTokens int
	StartedAt      time.Time
	BatchSize      int
	Logger         *slog.Logger
}

// OpenArchive opens the database at path and creates the run row.
func OpenArchive(path string, opts ArchiveOptions) (*Archive, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	runID, err := db.CreateRun(conn, db.Run{
		Input:          opts.Input,
		Lexicon:        opts.Lexicon,
		PositiveTokens: opts.PositiveTokens,
		NegativeTokens: opts.NegativeTokens,
		StartedAt:      opts.StartedAt,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	a := &Archive{
		conn:   conn,
		bw:     db.NewBatchWriter(conn, opts.BatchSize, time.Second),
		runID:  runID,
		logger: log,
	}
	a.bw.OnError = func(err error) {
		a.logger.Error("archive batch failed", "run", runID, "error", err)
	}
	return a, nil
}

// RunID is the id of the run row.
func (a *Archive) RunID() int64 { return a.runID }

// Write queues results. Positions continue across calls.
func (a *Archive) Write(results []sentiment.Result) error {
	for _, r := range results {
		s := scoreRow(a.runID, a.next, r)
		a.next++
		if err := a.bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			return db.InsertScore(tx, s)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Finish flushes queued scores and stamps the run with its summary. The
// archive is closed afterwards.
func (a *Archive) Finish(sum sentiment.Summary, finishedAt time.Time) error {
	werr := a.bw.Close()
	if werr == nil {
		werr = db.FinishRun(a.conn, a.runID, db.RunStats{
			Documents: sum.Documents,
			Mean:      sum.Mean,
			StdDev:    sum.StdDev,
			Min:       sum.Min,
			Max:       sum.Max,
		}, finishedAt)
	}
	a.logger.Debug("archive finished", "run", a.runID, "written", a.bw.Written())
	if cerr := a.conn.Close(); werr == nil {
		werr = cerr
	}
	return werr
}

func scoreRow(runID int64, pos int, r sentiment.Result) db.Score {
	s := db.Score{
		RunID:    runID,
		Position: pos,
		DocID:    r.ID,
		Source:   r.Source,
		Text:     r.Text,
		DateRaw:  r.Date,
		Cleaned:  r.Cleaned,
		Positive: r.Positive,
		Negative: r.Negative,
		Score:    r.Score,
	}
	if t, ok := document.NormalizeDate(r.Date); ok {
		s.DateISO = sql.NullString{String: t.Format("2006-01-02"), Valid: true}
	}
	return s
}
