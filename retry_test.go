package rgbmon

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/divi255/rgbmon/orgb"
)

func TestRetryPolicy(t *testing.T) {
	connErr := &ConnectionError{Op: "read", Err: io.ErrUnexpectedEOF}
	parseErr := &orgb.ParseError{Message: "bad", Offset: -1}
	mismatch := &ProtocolMismatchError{Client: 2, Server: 3}

	tests := []struct {
		name    string
		policy  retryPolicy
		attempt int
		err     error
		want    bool
	}{
		{"connection error within budget", retryPolicy{maxRetries: 3}, 0, connErr, true},
		{"connection error at last attempt", retryPolicy{maxRetries: 3}, 3, connErr, false},
		{"parse error within budget", retryPolicy{maxRetries: 1}, 0, parseErr, true},
		{"zero retries", retryPolicy{maxRetries: 0}, 0, connErr, false},
		{"protocol mismatch never retried", retryPolicy{maxRetries: 5}, 0, mismatch, false},
		{"not found never retried", retryPolicy{maxRetries: 5}, 0, ErrControllerNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.shouldRetry(tt.attempt, tt.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.False(t, Retryable(nil))
	assert.False(t, Retryable(ErrControllerNotFound))
	assert.False(t, Retryable(ErrNoEndpoint))
	assert.False(t, Retryable(&ProtocolMismatchError{Client: 2, Server: 1}))
	assert.False(t, Retryable(errors.New("unclassified")))
	assert.True(t, Retryable(&ConnectionError{Op: "connect", Err: io.EOF}))
	assert.True(t, Retryable(&orgb.ParseError{Message: "truncated", Offset: 4}))
}
