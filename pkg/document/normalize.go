package document

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// Tokenize splits text into treebank-style word tokens ("don't" -> "do", "n't";
// trailing punctuation becomes its own token).
func Tokenize(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		// Unreachable with tagging and extraction off.
		return strings.Fields(text)
	}
	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Text)
	}
	return out
}

// NormalizeBody lowercases and deduplicates the body's tokens, keeps only purely
// alphabetic ones and joins them with single spaces. Order follows first
// appearance.
func NormalizeBody(body string) string {
	seen := make(map[string]struct{})
	var kept []string
	for _, tok := range Tokenize(body) {
		w := strings.ToLower(tok)
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if isAlpha(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
