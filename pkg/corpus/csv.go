package corpus

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/japaniel/lexisent/pkg/document"
)

// loadCSV reads a headerless, single-column CSV file. Every record is one
// document, taken verbatim; the ID is the record's 0-based position.
func (ig *Ingestor) loadCSV(path string) ([]document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Reason: "failed to read file", Err: err}
	}
	text, used, err := decode(data, ig.encoding())
	if err != nil {
		return nil, &EncodingError{Path: path, Encoding: used, Err: err}
	}

	docs, err := parseCSV(strings.NewReader(text))
	if err != nil {
		return nil, &InputError{Path: path, Reason: "not a single-column CSV", Err: err}
	}
	if len(docs) == 0 {
		return nil, &InputError{Path: path, Reason: "no documents found"}
	}
	ig.logger().Debug("loaded csv corpus", "path", path, "documents", len(docs), "encoding", used)
	return docs, nil
}

func parseCSV(r io.Reader) ([]document.Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var docs []document.Document
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, document.Document{
			ID:     strconv.Itoa(len(docs)),
			Text:   rec[0],
			Source: document.SourceCSV,
		})
	}
	return docs, nil
}
