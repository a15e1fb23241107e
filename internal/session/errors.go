package session

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSession = errors.New("malformed session document")
	ErrInputNotFound    = errors.New("input directory not found")
)

// MalformedSessionError describes a session document that was skipped.
type MalformedSessionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedSessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", ErrMalformedSession, e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", ErrMalformedSession, e.Path, e.Reason)
}

func (e *MalformedSessionError) Unwrap() error { return e.Err }

func (e *MalformedSessionError) Is(target error) bool { return target == ErrMalformedSession }

// InputNotFoundError reports a missing or unreadable session directory.
type InputNotFoundError struct {
	Dir string
	Err error
}

func (e *InputNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInputNotFound, e.Dir, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrInputNotFound, e.Dir)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

func (e *InputNotFoundError) Is(target error) bool { return target == ErrInputNotFound }

func malformed(path, reason string, err error) *MalformedSessionError {
	return &MalformedSessionError{Path: path, Reason: reason, Err: err}
}
