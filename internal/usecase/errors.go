package usecase

import crerr "github.com/cockroachdb/errors"

var (
	// ErrNotFound reports that a requested entity does not exist.
	ErrNotFound = crerr.New("not found")
	// ErrInvalidArgument reports a request the caller can fix.
	ErrInvalidArgument = crerr.New("invalid argument")
	// ErrSourceUnavailable reports that the upstream site could not serve
	// a page the run cannot proceed without.
	ErrSourceUnavailable = crerr.New("source unavailable")
)
