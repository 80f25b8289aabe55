// Package corpus turns an input path into the list of documents to score.
//
// Three inputs are understood:
//   - a URL (http:// or https://): the page's main article text, one document
//   - a directory: every .txt file, split into header and body and cleaned
//   - any other regular file: a headerless single-column CSV, one document per row
//
// CSV rows and articles are scored verbatim while folder documents are cleaned
// (lowercased, deduplicated, alphabetic words only), so the same text can score
// differently depending on how it was supplied.
package corpus

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/japaniel/lexisent/pkg/document"
)

// Ingestor loads documents from an input path.
type Ingestor struct {
	// Encoding is one of the Encoding* constants; empty means latin1.
	Encoding string
	// Logger is used for debug output. nil means slog.Default().
	Logger *slog.Logger
	// Workers bounds concurrent file reads in folder mode.
	Workers int
	// HTTPClient is used in URL mode. nil means a client with a 30s timeout.
	HTTPClient *http.Client
}

// NewIngestor creates an Ingestor with the default (latin1) encoding.
func NewIngestor() *Ingestor {
	return &Ingestor{
		Encoding: EncodingLatin1,
		Workers:  runtime.NumCPU(),
	}
}

// Load picks the mode from the shape of input and returns its documents.
// Failures are *InputError or *EncodingError values.
func (ig *Ingestor) Load(ctx context.Context, input string) ([]document.Document, error) {
	if IsURL(input) {
		doc, err := ig.fetchArticle(ctx, input)
		if err != nil {
			return nil, err
		}
		return []document.Document{doc}, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, &InputError{Path: input, Reason: "neither a readable CSV file nor an existing directory", Err: err}
	}
	switch {
	case info.IsDir():
		return ig.loadFolder(ctx, input)
	case info.Mode().IsRegular():
		return ig.loadCSV(input)
	default:
		return nil, &InputError{Path: input, Reason: "neither a readable CSV file nor an existing directory"}
	}
}

func (ig *Ingestor) encoding() string {
	if ig.Encoding == "" {
		return EncodingLatin1
	}
	return ig.Encoding
}

func (ig *Ingestor) workers() int {
	if ig.Workers <= 0 {
		return 1
	}
	return ig.Workers
}

func (ig *Ingestor) logger() *slog.Logger {
	if ig.Logger == nil {
		return slog.Default()
	}
	return ig.Logger
}

func (ig *Ingestor) httpClient() *http.Client {
	if ig.HTTPClient == nil {
		return &http.Client{Timeout: 30 * time.Second}
	}
	return ig.HTTPClient
}
