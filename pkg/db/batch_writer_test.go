package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func closeWithin(t *testing.T, bw *BatchWriter, d time.Duration) error {
	t.Helper()
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- bw.Close()
	}()
	select {
	case err := <-doneCh:
		return err
	case <-time.After(d):
		t.Fatal("timeout waiting for batch writer to close")
		return nil
	}
}

func TestBatchWriterCommitsScores(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()
	runID, err := CreateRun(conn, Run{Input: "docs"})
	if err != nil {
		t.Fatalf("create run: %v", err)
	}

	bw := NewBatchWriter(conn, 2, 0)
	for i, text := range []string{"a", "b", "c"} {
		s := Score{RunID: runID, Position: i, DocID: text, Source: "folder", Text: text}
		if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			return InsertScore(tx, s)
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if err := closeWithin(t, bw, time.Second); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if bw.Written() != 3 {
		t.Fatalf("expected 3 written, got %d", bw.Written())
	}

	got, err := GetScoresByRun(conn, runID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
}

func TestBatchWriterRollsBackFailedBatch(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()
	runID, err := CreateRun(conn, Run{Input: "docs"})
	if err != nil {
		t.Fatalf("create run: %v", err)
	}

	bw := NewBatchWriter(conn, 2, 0)
	var mu sync.Mutex
	var errs []error
	bw.OnError = func(e error) {
		mu.Lock()
		errs = append(errs, e)
		mu.Unlock()
	}

	boom := errors.New("boom")
	bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		return InsertScore(tx, Score{RunID: runID, Position: 0, DocID: "ok", Source: "csv"})
	})
	bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		return boom
	})

	err = closeWithin(t, bw, time.Second)
	if !errors.Is(err, boom) {
		t.Fatalf("expected Close to return the batch error, got %v", err)
	}
	mu.Lock()
	n := len(errs)
	mu.Unlock()
	if n != 1 {
		t.Fatalf("expected 1 OnError call, got %d", n)
	}

	got, err := GetScoresByRun(conn, runID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected the whole batch rolled back, got %d rows", len(got))
	}
	if bw.Written() != 0 {
		t.Fatalf("expected 0 written, got %d", bw.Written())
	}
}

func TestBatchWriterSubmitAfterClose(t *testing.T) {
	bw := NewBatchWriter(nil, 1, 0)
	if err := bw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error { return nil }); err != ErrBatchWriterClosed {
		t.Fatalf("expected ErrBatchWriterClosed, got %v", err)
	}
	if err := bw.Close(); err != ErrBatchWriterClosed {
		t.Fatalf("expected ErrBatchWriterClosed on second close, got %v", err)
	}
}

func TestBatchWriterFlushInterval(t *testing.T) {
	bw := NewBatchWriter(nil, 100, 10*time.Millisecond)
	done := make(chan struct{})
	if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		close(done)
		return nil
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected the ticker to flush a partial batch")
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestBatchWriterDropsBatchOnCancel(t *testing.T) {
	bw := NewBatchWriter(nil, 1, 0)
	errCh := make(chan error, 1)
	bw.OnError = func(e error) {
		select {
		case errCh <- e:
		default:
		}
	}

	blocker := make(chan struct{})
	started := make(chan struct{})
	// The committer holds this batch while the next two fill the channel.
	if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		close(started)
		<-blocker
		return nil
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	<-started
	noop := func(ctx context.Context, tx *sql.Tx) error { return nil }
	for i := 0; i < 2; i++ {
		if err := bw.Submit(noop); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	bw.cancel()
	if err := bw.Submit(noop); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	close(blocker)

	select {
	case e := <-errCh:
		if e == nil || !strings.Contains(e.Error(), "dropping batch") {
			t.Fatalf("unexpected OnError value: %v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("expected OnError to be called when batch dropped")
	}
	if err := bw.Close(); err == nil || !strings.Contains(err.Error(), "dropping batch") {
		t.Fatalf("expected Close to report the dropped batch, got %v", err)
	}
}
