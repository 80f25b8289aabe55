package corpus

import "fmt"

// InputError reports an input path that is unreadable, has the wrong shape, or
// matches none of the supported modes.
type InputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("input %s: %s", e.Path, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Err }

// EncodingError reports a file that cannot be decoded with the configured
// encoding.
type EncodingError struct {
	Path     string
	Encoding string
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("decode %s as %s: %v", e.Path, e.Encoding, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
