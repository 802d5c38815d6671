package rgbmon

import (
	"errors"
	"fmt"

	"github.com/divi255/rgbmon/orgb"
)

var (
	// ErrControllerNotFound is returned by SetColor when the selector
	// matched no controller in the directory. It is distinct from
	// connection and protocol errors: the system is healthy, there was
	// simply nothing to do for a criterion that demands a match.
	ErrControllerNotFound = errors.New("rgbmon: controller not found")

	// ErrNoEndpoint is returned when an operation runs before SetEndpoint.
	ErrNoEndpoint = errors.New("rgbmon: no server endpoint configured")
)

// ConnectionError wraps socket-level failures: connect, read, write or
// timeout. Operations failing this way are retried per the client's retry
// policy before the error surfaces.
type ConnectionError struct {
	Op  string // "connect", "read", "write"
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("rgbmon: connection error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ProtocolMismatchError reports a failed version negotiation. It is never
// retried: reconnecting cannot change the server's protocol version.
type ProtocolMismatchError struct {
	Client uint32
	Server uint32
}

func (e *ProtocolMismatchError) Error() string {
	return fmt.Sprintf("rgbmon: server protocol version %d, client supports %d", e.Server, e.Client)
}

// Retryable reports whether an operation failing with err may succeed on
// a fresh connection. Connection errors and malformed responses qualify
// (the byte stream is unusable either way); protocol mismatches and
// not-found selections do not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrControllerNotFound) || errors.Is(err, ErrNoEndpoint) {
		return false
	}
	var mismatch *ProtocolMismatchError
	if errors.As(err, &mismatch) {
		return false
	}
	var connErr *ConnectionError
	var parseErr *orgb.ParseError
	return errors.As(err, &connErr) || errors.As(err, &parseErr)
}
