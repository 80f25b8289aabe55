package corpus

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/japaniel/lexisent/pkg/document"
)

// TextExt is the only file extension picked up in folder mode.
const TextExt = ".txt"

// loadFolder reads every .txt file in dir (not recursively), cleans it and
// returns the documents in file name order. The first file that cannot be read
// or decoded aborts the whole load.
func (ig *Ingestor) loadFolder(ctx context.Context, dir string) ([]document.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &InputError{Path: dir, Reason: "failed to list directory", Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != TextExt {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		ig.logger().Warn("no text files found", "dir", dir, "ext", TextExt)
		return []document.Document{}, nil
	}

	docs := make([]document.Document, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ig.workers())
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := ig.readTextFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ig.logger().Debug("loaded folder corpus", "dir", dir, "documents", len(docs), "skipped", len(entries)-len(names))
	return docs, nil
}

func (ig *Ingestor) readTextFile(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Document{}, &InputError{Path: path, Reason: "failed to read file", Err: err}
	}
	text, used, err := decode(data, ig.encoding())
	if err != nil {
		return document.Document{}, &EncodingError{Path: path, Encoding: used, Err: err}
	}
	rec := document.Clean(text)
	return document.Document{
		ID:      filepath.Base(path),
		Text:    rec.Text,
		Date:    rec.Date,
		Cleaned: rec.Cleaned,
		Source:  document.SourceFolder,
	}, nil
}
