package workfront

import "fmt"

// AuthError is fatal: either the JWT exchange was rejected or a request was
// attempted without a session credential. The run aborts on it.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("workfront auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("workfront auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RequestError carries the status code and response body of a non-2xx
// Workfront response so a failed task or document can be diagnosed from the
// logs. It is handled at document/task granularity, never aborts the run.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("workfront API error: %s %s: status=%d body=%s", e.Method, e.URL, e.StatusCode, e.Body)
}
