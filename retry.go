package rgbmon

// retryPolicy decides whether a failed attempt should be repeated. It is
// pure: the decision depends only on the attempt number and the error
// class, never on connection state, so it can be tested without I/O.
//
// Attempts are immediate and sequential with no backoff. An optional
// circuit breaker (Config.NewCircuitBreaker) is the guard against
// hammering a dead server.
type retryPolicy struct {
	// maxRetries is the number of extra attempts after the first, so a
	// failing operation is tried maxRetries+1 times in total.
	maxRetries int
}

// shouldRetry reports whether attempt (zero-based) may be followed by
// another one after failing with err.
func (p retryPolicy) shouldRetry(attempt int, err error) bool {
	if attempt >= p.maxRetries {
		return false
	}
	return Retryable(err)
}
