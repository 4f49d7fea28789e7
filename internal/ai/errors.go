package ai

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse marks a successful HTTP exchange whose body did not
// carry generated text.
var ErrInvalidResponse = errors.New("invalid response from generative API")

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Status     string // upstream status name, e.g. RESOURCE_EXHAUSTED
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generative API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("generative API returned status %d: %s", e.StatusCode, e.Message)
}

// MissingFieldError names the response segment that was absent.
type MissingFieldError struct {
	Field        string
	BlockReason  string
	FinishReason string
}

func (e *MissingFieldError) Error() string {
	msg := fmt.Sprintf("%s: missing %s", ErrInvalidResponse, e.Field)
	if e.BlockReason != "" {
		msg += " (blocked: " + e.BlockReason + ")"
	}
	if e.FinishReason != "" {
		msg += " (finish reason: " + e.FinishReason + ")"
	}
	return msg
}

func (e *MissingFieldError) Unwrap() error {
	return ErrInvalidResponse
}
