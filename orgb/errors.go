package orgb

import "fmt"

// ParseError reports malformed wire data: a bad envelope, a response that
// does not echo the request, or a controller payload whose counts point
// past the end of the buffer.
//
// The byte stream cannot be trusted after a ParseError. The framing has no
// resynchronization marker, so the only safe reaction is to drop the
// connection and reconnect.
type ParseError struct {
	Message string
	Offset  int   // byte offset in the payload, -1 when not applicable
	Err     error // underlying error, if any
}

func (e *ParseError) Error() string {
	msg := "orgb: " + e.Message
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s (offset %d)", msg, e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(offset int, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Offset: offset}
}
