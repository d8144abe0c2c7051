package archive

import (
	"errors"
	"fmt"
)

// ContractError reports a violated grouping precondition. These are
// programming errors on the caller's side, never user-facing conditions:
// the handlers translate them to a 500, not a not-found page.
type ContractError struct {
	// Code identifies the violated precondition.
	Code ContractErrorCode

	// Message is a human-readable description.
	Message string

	// Slug identifies the offending entry, if any.
	Slug string

	// Index is the position of the offending item in the input sequence.
	Index int
}

// ContractErrorCode categorizes contract violations.
type ContractErrorCode string

const (
	// ErrCodeUnpostedEntry indicates a draft reached the grouper.
	// Filtering drafts is the store's responsibility.
	ErrCodeUnpostedEntry ContractErrorCode = "UNPOSTED_ENTRY"

	// ErrCodeOutOfOrder indicates the input was not sorted by
	// descending posting time.
	ErrCodeOutOfOrder ContractErrorCode = "OUT_OF_ORDER"
)

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("%s: %s (entry=%s, index=%d)", e.Code, e.Message, e.Slug, e.Index)
	}
	return fmt.Sprintf("%s: %s (index=%d)", e.Code, e.Message, e.Index)
}

// IsContractError returns true if the error is a grouping contract
// violation. Uses errors.As to handle wrapped errors.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

func newUnpostedError(slug string, index int) *ContractError {
	return &ContractError{
		Code:    ErrCodeUnpostedEntry,
		Message: "draft entry reached the grouper",
		Slug:    slug,
		Index:   index,
	}
}

func newOutOfOrderError(slug string, index int) *ContractError {
	return &ContractError{
		Code:    ErrCodeOutOfOrder,
		Message: "input not sorted by descending posting time",
		Slug:    slug,
		Index:   index,
	}
}
