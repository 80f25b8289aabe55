package sentiment

import (
	"reflect"
	"testing"
)

func TestCountMatchesSubstringSemantics(t *testing.T) {
	tokens := []string{"cat", "dog"}
	got := CountMatches(tokens, []string{"the dog sat", "dogcatcher", "nothing here", ""})
	want := []int{1, 2, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CountMatches = %v, want %v", got, want)
	}
}

func TestCountMatchesCountsDistinctTokens(t *testing.T) {
	got := CountMatches([]string{"bad"}, []string{"bad bad bad"})
	if got[0] != 1 {
		t.Fatalf("expected a repeated token to count once, got %d", got[0])
	}
}

func TestCountMatchesQuirks(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
		text   string
		want   int
	}{
		{"inside longer word", []string{"art"}, "a heart of gold", 1},
		{"case sensitive", []string{"Good"}, "good times", 0},
		{"blank token matches anything", []string{""}, "abc", 1},
		{"blank token matches empty text", []string{""}, "", 1},
		{"non ascii", []string{"café"}, "le café noir", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountMatches(tc.tokens, []string{tc.text})[0]; got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCountMatchesEmptyInputs(t *testing.T) {
	if got := CountMatches(nil, []string{"a", "b"}); !reflect.DeepEqual(got, []int{0, 0}) {
		t.Errorf("no tokens: got %v", got)
	}
	if got := CountMatches([]string{"a"}, nil); len(got) != 0 {
		t.Errorf("no texts: got %v", got)
	}
}
