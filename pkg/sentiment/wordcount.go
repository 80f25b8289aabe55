package sentiment

import "strings"

// CountMatches returns, for every text, how many of the given tokens occur in it
// as a literal, case-sensitive substring. Each token counts at most once per
// text, however often it occurs.
//
// Matching is deliberately not word-aware: the token "art" is found inside
// "heart". Results depend only on the (token, text) pairs, so texts may be
// counted in any order or in parallel.
func CountMatches(tokens, texts []string) []int {
	out := make([]int, len(texts))
	for i, txt := range texts {
		out[i] = countIn(tokens, txt)
	}
	return out
}

func countIn(tokens []string, text string) int {
	n := 0
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			n++
		}
	}
	return n
}
