// Package sentiment counts lexicon tokens in documents and turns the counts into
// Janis-Fadner imbalance scores.
package sentiment

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/japaniel/lexisent/pkg/document"
	"github.com/japaniel/lexisent/pkg/lexicon"
)

// WorkerPoolInterface abstracts the worker pool so tests can inject failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	// SubmitCtx attempts to enqueue a job but returns promptly if ctx is canceled.
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Result is a scored document.
type Result struct {
	document.Document
	Positive int
	Negative int
	Score    float64
}

// Analyzer scores documents against a lexicon.
type Analyzer struct {
	Lexicon *lexicon.Lexicon
	// Logger receives debug output. nil means slog.Default().
	Logger *slog.Logger
	// OnProgress is called with the number of scored documents and the total.
	// Calls are serialized but may come from worker goroutines.
	OnProgress func(current, total int)
	// ProgressEvery controls how often OnProgress fires.
	ProgressEvery int

	Workers int

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// NewAnalyzer creates an Analyzer with one worker per CPU.
func NewAnalyzer(lex *lexicon.Lexicon) *Analyzer {
	return &Analyzer{
		Lexicon:       lex,
		Workers:       runtime.NumCPU(),
		ProgressEvery: 100,
	}
}

// Score counts and scores a single document.
func (a *Analyzer) Score(doc document.Document) Result {
	p := countIn(a.Lexicon.Positive, doc.Text)
	n := countIn(a.Lexicon.Negative, doc.Text)
	return Result{
		Document: doc,
		Positive: p,
		Negative: n,
		Score:    Imbalance(p, n),
	}
}

// Analyze scores every document. Results are in input order and identical to
// running CountMatches and ImbalanceAll over the whole corpus; documents are
// spread over the worker pool, each job writing only its own slot.
func (a *Analyzer) Analyze(ctx context.Context, docs []document.Document) ([]Result, error) {
	log := a.Logger
	if log == nil {
		log = slog.Default()
	}
	total := len(docs)
	results := make([]Result, total)
	if total == 0 {
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wp WorkerPoolInterface
	if a.PoolFactory != nil {
		wp = a.PoolFactory(a.Workers, a.Workers*2)
	} else {
		wp = NewWorkerPool(a.Workers, a.Workers*2)
	}
	wp.Start(ctx)
	defer wp.Close()

	var done int64
	var progressMu sync.Mutex
	every := a.ProgressEvery
	if every <= 0 {
		every = 100
	}

	for i := range docs {
		idx := i
		job := func(ctx context.Context) error {
			results[idx] = a.Score(docs[idx])
			n := atomic.AddInt64(&done, 1)
			if a.OnProgress != nil && int(n)%every == 0 {
				progressMu.Lock()
				a.OnProgress(int(n), total)
				progressMu.Unlock()
			}
			return nil
		}
		if err := wp.SubmitCtx(ctx, job); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, err
		}
	}

	// Drain the queue; every accepted job has run once Close returns, unless
	// the context stopped the workers early.
	wp.Close()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if got := atomic.LoadInt64(&done); int(got) != total {
		return nil, &PoolError{"worker pool stopped before all documents were scored"}
	}

	if a.OnProgress != nil && total%every != 0 {
		a.OnProgress(total, total)
	}
	log.Debug("scored documents",
		"documents", total,
		"positive_tokens", len(a.Lexicon.Positive),
		"negative_tokens", len(a.Lexicon.Negative),
		"workers", a.Workers,
	)
	return results, nil
}

// Scores extracts the score of every result, in order.
func Scores(results []Result) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Score
	}
	return out
}
