// Package lexicon loads token/sentiment word lists and splits them into
// positive and negative token sets.
package lexicon

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Required column names.
const (
	ColumnToken     = "token"
	ColumnSentiment = "sentiment"
)

//go:embed default.csv
var defaultCSV string

// Lexicon holds the positive and negative tokens of a word list. Each slice is
// free of duplicates and keeps the order of first appearance in the source.
type Lexicon struct {
	Positive []string
	Negative []string
}

// Size returns the total number of tokens in both sets.
func (l *Lexicon) Size() int {
	return len(l.Positive) + len(l.Negative)
}

// SchemaError reports a word list that lacks the token/sentiment columns or
// cannot be read as a table at all.
type SchemaError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("lexicon")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required column(s) %s", strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Load reads the word list at path. Errors opening the file are returned as is;
// anything wrong with its contents is a *SchemaError.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer f.Close()

	lex, err := Parse(f)
	if err != nil {
		if se, ok := err.(*SchemaError); ok {
			se.Path = path
		}
		return nil, err
	}
	return lex, nil
}

// Default returns the embedded starter word list.
func Default() *Lexicon {
	lex, err := Parse(strings.NewReader(defaultCSV))
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
}

// Parse reads a CSV table with a header row. Rows with a positive sentiment go
// to Positive, negative ones to Negative; zero and unparsable sentiments are
// dropped. A leading UTF-8 byte order mark is ignored, and a header without
// rows is an empty lexicon.
func Parse(r io.Reader) (*Lexicon, error) {
	// Other bytes pass through untouched so latin1 word lists keep their tokens.
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder())))
	if err != nil {
		return nil, &SchemaError{Err: err}
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
		dataframe.WithTypes(map[string]series.Type{
			ColumnToken:     series.String,
			ColumnSentiment: series.Float,
		}),
	)
	if df.Err != nil {
		header, ok := headerOnly(data)
		if !ok {
			return nil, &SchemaError{Err: df.Err}
		}
		if missing := missingColumns(header); len(missing) > 0 {
			return nil, &SchemaError{Missing: missing}
		}
		return &Lexicon{}, nil
	}
	if missing := missingColumns(df.Names()); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	tokens := df.Col(ColumnToken).Records()
	weights := df.Col(ColumnSentiment).Float()

	lex := &Lexicon{}
	seenPos := make(map[string]struct{})
	seenNeg := make(map[string]struct{})
	for i, tok := range tokens {
		switch w := weights[i]; {
		case w > 0:
			lex.Positive = appendUnique(lex.Positive, seenPos, tok)
		case w < 0:
			lex.Negative = appendUnique(lex.Negative, seenNeg, tok)
		}
	}
	return lex, nil
}

// headerOnly reports whether data holds a header record and nothing else.
// gota refuses such tables.
func headerOnly(data []byte) ([]string, bool) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	header, err := cr.Read()
	if err != nil {
		return nil, false
	}
	if _, err := cr.Read(); err != io.EOF {
		return nil, false
	}
	return header, true
}

func missingColumns(names []string) []string {
	var missing []string
	for _, want := range []string{ColumnToken, ColumnSentiment} {
		if !hasColumn(names, want) {
			missing = append(missing, want)
		}
	}
	return missing
}

func hasColumn(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func appendUnique(dst []string, seen map[string]struct{}, tok string) []string {
	if _, ok := seen[tok]; ok {
		return dst
	}
	seen[tok] = struct{}{}
	return append(dst, tok)
}
