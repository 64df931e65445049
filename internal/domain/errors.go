package domain

import "errors"

// Sentinel errors shared by every package. Check with errors.Is.
var (
	ErrFileUnavailable = errors.New("file unavailable")
	ErrMalformedRecord = errors.New("malformed record")
	ErrInvalidCount    = errors.New("invalid count")
	ErrEmptyLog        = errors.New("result log is empty")
	ErrMissingEditor   = errors.New("no editor configured (set $EDITOR)")
)
