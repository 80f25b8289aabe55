package corpus

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// Supported values for Ingestor.Encoding.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf-8"
	EncodingAuto   = "auto"
)

var errInvalidUTF8 = errors.New("invalid UTF-8 byte sequence")

// ParseEncoding normalizes an encoding name. The empty string means latin1,
// the single-byte Western European encoding legacy corpora are written in.
func ParseEncoding(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "auto":
		return EncodingAuto, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q (want latin1, utf-8 or auto)", name)
	}
}

// decode turns raw file content into a string. It returns the name of the
// encoding actually used, which differs from enc only in auto mode.
func decode(data []byte, enc string) (string, string, error) {
	switch enc {
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return "", enc, errInvalidUTF8
		}
		return string(data), enc, nil
	case EncodingAuto:
		name, e := detect(data)
		if e == nil {
			if !utf8.Valid(data) {
				return "", name, errInvalidUTF8
			}
			return string(data), name, nil
		}
		out, err := e.NewDecoder().Bytes(data)
		return string(out), name, err
	default:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		return string(out), EncodingLatin1, err
	}
}

// detect guesses the charset of data. A nil encoding means UTF-8. Anything the
// detector cannot name, or names but x/text does not know, falls back to latin1.
func detect(data []byte) (string, encoding.Encoding) {
	res, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || res == nil {
		return EncodingLatin1, charmap.ISO8859_1
	}
	if strings.EqualFold(res.Charset, "UTF-8") {
		return EncodingUTF8, nil
	}
	e, err := htmlindex.Get(res.Charset)
	if err != nil {
		return EncodingLatin1, charmap.ISO8859_1
	}
	if name, err := htmlindex.Name(e); err == nil {
		return name, e
	}
	return res.Charset, e
}
