package enhance

import (
	"context"
	"errors"
	"fmt"
)

// Request is one text-transform invocation: a system instruction, a user
// prompt, and an output token budget.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Transformer is the external text-rewriting capability. Every call site must
// tolerate failure; a failed transform degrades content, it never fails a
// document.
type Transformer interface {
	Transform(ctx context.Context, req Request) (string, error)
}

// ErrUnavailable is returned by the passthrough transformer selected when no
// transform credential is configured. Callers keep original content on it.
var ErrUnavailable = errors.New("transform unavailable")

// Unavailable is the no-op transformer. It lets call sites invoke the
// capability unconditionally instead of branching on configuration.
type Unavailable struct{}

func (Unavailable) Transform(ctx context.Context, req Request) (string, error) {
	return "", ErrUnavailable
}

// RetryableError indicates a transient transform failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
