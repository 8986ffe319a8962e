package llm

import "fmt"

// ErrUnavailable indicates the endpoint is unreachable, timed out, or kept
// returning 5xx after all retries. Also returned while the circuit is open.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM unavailable: %v", e.Err)
	}
	return "LLM unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrBadResponse indicates the completion payload lacks the expected
// choices[0].message.content shape.
type ErrBadResponse struct {
	Err error
}

func (e *ErrBadResponse) Error() string {
	return fmt.Sprintf("bad LLM response: %v", e.Err)
}

func (e *ErrBadResponse) Unwrap() error { return e.Err }

// ErrClient indicates the endpoint rejected the request with a 4xx status.
// Never retried.
type ErrClient struct {
	StatusCode int
	Err        error
}

func (e *ErrClient) Error() string {
	return fmt.Sprintf("LLM client error (status %d): %v", e.StatusCode, e.Err)
}

func (e *ErrClient) Unwrap() error { return e.Err }
