package services

import "errors"

var (
	// ErrClassification covers advisor failures: the upstream call failed or
	// its reply was not parsable. Nothing is persisted when it is returned.
	ErrClassification = errors.New("could not analyze")

	// ErrNothingPending is the benign result of confirming or discarding when
	// no candidate is staged, e.g. a retried request.
	ErrNothingPending = errors.New("nothing to confirm")

	// ErrInvalidInput rejects malformed profile or log input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailTaken means a registration reused an existing account's email.
	ErrEmailTaken = errors.New("email already registered")
)
