package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError marks invalid identity inputs (empty hotel name, bad chain
// id). Fatal to the single record it concerns, never to a batch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseFailure is implemented by oracle errors that carry the raw model
// output, so the sweep can log the offending text without knowing the
// oracle implementation.
type ParseFailure interface {
	error
	RawOutput() string
}
