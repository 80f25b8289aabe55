package sentiment

import (
	"context"
	"fmt"
	"testing"

	"github.com/japaniel/lexisent/pkg/document"
	"github.com/japaniel/lexisent/pkg/lexicon"
)

func generateBenchmarkDocs(n int) []document.Document {
	docs := make([]document.Document, n)
	for i := range docs {
		docs[i] = document.Document{
			ID:   fmt.Sprintf("%d", i),
			Text: fmt.Sprintf("the market had a good and strong day %d but analysts warned of a weak and uncertain outlook", i),
		}
	}
	return docs
}

func BenchmarkAnalyze(b *testing.B) {
	docs := generateBenchmarkDocs(1000)
	a := NewAnalyzer(lexicon.Default())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Analyze(ctx, docs); err != nil {
			b.Fatalf("analyze failed: %v", err)
		}
	}
}

func BenchmarkCountMatches(b *testing.B) {
	docs := generateBenchmarkDocs(1000)
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	lex := lexicon.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CountMatches(lex.Positive, texts)
		CountMatches(lex.Negative, texts)
	}
}
