package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParsePartitionsBySign(t *testing.T) {
	src := "token,sentiment,pos\n" +
		"good,1,adj\n" +
		"bad,-1,adj\n" +
		"meh,0,adj\n" +
		"great,0.5,adj\n" +
		"awful,-2,adj\n" +
		"good,1,noun\n" +
		",1,blank\n"

	lex, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantPos := []string{"good", "great", ""}
	wantNeg := []string{"bad", "awful"}
	if !reflect.DeepEqual(lex.Positive, wantPos) {
		t.Errorf("positive = %q, want %q", lex.Positive, wantPos)
	}
	if !reflect.DeepEqual(lex.Negative, wantNeg) {
		t.Errorf("negative = %q, want %q", lex.Negative, wantNeg)
	}
	if lex.Size() != 5 {
		t.Errorf("Size() = %d, want 5", lex.Size())
	}
}

func TestParseDropsUnparsableSentiment(t *testing.T) {
	lex, err := Parse(strings.NewReader("token,sentiment\nodd,n/a\nfine,2\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(lex.Positive) != 1 || lex.Positive[0] != "fine" || len(lex.Negative) != 0 {
		t.Fatalf("unexpected lexicon %+v", lex)
	}
}

func TestParseMissingColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("word,score\ngood,1\n"))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if !reflect.DeepEqual(se.Missing, []string{"token", "sentiment"}) {
		t.Errorf("missing = %v", se.Missing)
	}

	_, err = Parse(strings.NewReader("token,weight\ngood,1\n"))
	if !errors.As(err, &se) || !reflect.DeepEqual(se.Missing, []string{"sentiment"}) {
		t.Fatalf("expected missing sentiment column, got %v", err)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	lex, err := Parse(strings.NewReader("token,sentiment\n"))
	if err != nil {
		t.Fatalf("header-only lexicon should load, got %v", err)
	}
	if lex.Size() != 0 {
		t.Errorf("expected empty lexicon, got %+v", lex)
	}

	_, err = Parse(strings.NewReader("token,weight\n"))
	var se *SchemaError
	if !errors.As(err, &se) || !reflect.DeepEqual(se.Missing, []string{"sentiment"}) {
		t.Fatalf("expected missing sentiment column, got %v", err)
	}

	_, err = Parse(strings.NewReader(""))
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError for empty input, got %v", err)
	}
}

func TestParseByteOrderMark(t *testing.T) {
	lex, err := Parse(strings.NewReader("\xef\xbb\xbftoken,sentiment\ngood,1\nbad,-1\n"))
	if err != nil {
		t.Fatalf("parse with BOM: %v", err)
	}
	if !reflect.DeepEqual(lex.Positive, []string{"good"}) || !reflect.DeepEqual(lex.Negative, []string{"bad"}) {
		t.Errorf("unexpected lexicon %+v", lex)
	}
}

func TestParseKeepsLatin1Bytes(t *testing.T) {
	lex, err := Parse(strings.NewReader("token,sentiment\ncaf\xe9,1\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(lex.Positive, []string{"caf\xe9"}) {
		t.Errorf("expected raw latin1 token, got %q", lex.Positive)
	}
}

func TestLoadSetsPathOnSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	if err := os.WriteFile(path, []byte("word,score\nx,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if se.Path != path || !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to mention %s, got %q", path, err.Error())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	lex := Default()
	if len(lex.Positive) == 0 || len(lex.Negative) == 0 {
		t.Fatalf("embedded lexicon is empty: %+v", lex)
	}
	for _, tok := range lex.Positive {
		if tok == "bad" {
			t.Fatalf("bad listed as positive")
		}
	}
}
