package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
	// ErrCommitFailed wraps storage-level transaction failures. The
	// in-memory mutation that was about to be applied is discarded.
	ErrCommitFailed = errors.New("commit failed")
	// ErrScopeMismatch marks a cross-scope move whose target scope cannot
	// hold the entity's kind (e.g. a task into the areas scope).
	ErrScopeMismatch = errors.New("scope mismatch")
)
