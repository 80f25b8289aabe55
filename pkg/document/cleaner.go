package document

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Record is the result of cleaning one raw document.
type Record struct {
	Text    string
	Date    string
	Cleaned bool
}

var (
	// A line holding only the marker word, plus at most one trailing character
	// (e.g. "Body:" or a stray carriage return).
	reBodyMarker = regexp.MustCompile(`(?m)^Body.?$`)

	// Date candidates, in priority order. All matches of all patterns are
	// collected and the first one wins.
	reDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^ {5,}.*` + digit + `+.*` + digit + `{4}` + space),
		regexp.MustCompile(word + `+ ` + digit + `+.*` + digit + `{4}`),
		regexp.MustCompile(word + `+` + space + `*` + digit + `{4}`),
	}
)

// Unicode-aware word, digit and space classes. Go's \w, \d and \s are
// ASCII-only, which would cut accented header words such as "Édition".
const (
	word  = `[\p{L}\p{N}_]`
	digit = `\p{Nd}`
	space = `[\s\v\p{Z}\x{1c}-\x{1f}\x{85}]`
)

// Clean splits raw into header and body, extracts a date from the header and
// normalizes the body into a bag of lowercase alphabetic words.
func Clean(raw string) Record {
	header, body, ok := SplitHeader(raw)
	return Record{
		Text:    NormalizeBody(body),
		Date:    ExtractDate(header),
		Cleaned: ok,
	}
}

// SplitHeader looks for the first "Body" marker line. Everything before it is the
// header and everything after it the body. Without a marker the header is empty
// and the whole document is the body.
func SplitHeader(raw string) (header, body string, ok bool) {
	loc := reBodyMarker.FindStringIndex(raw)
	if loc == nil {
		return "", raw, false
	}
	return raw[:loc[0]], raw[loc[1]:], true
}

// ExtractDate returns the first date-looking string in header, or "" when the
// header is empty or nothing matches.
func ExtractDate(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	var candidates []string
	for _, re := range reDatePatterns {
		candidates = append(candidates, re.FindAllString(header, -1)...)
	}
	if len(candidates) == 0 {
		return ""
	}
	return strings.TrimSpace(candidates[0])
}

// NormalizeDate parses an extracted date string. Header dates come in many
// legacy layouts, so a false result is expected and not an error.
func NormalizeDate(date string) (time.Time, bool) {
	if date == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
