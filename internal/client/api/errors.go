package api

import "errors"

var (
	// ErrUnavailable marks transport-level failures: connection refused,
	// DNS errors, context deadline on dial, and the like.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnexpectedStatus marks any HTTP status other than the one the
	// operation expects (201 for create, 200 for everything else). The
	// calling layer treats every non-success uniformly, so no finer
	// taxonomy is kept.
	ErrUnexpectedStatus = errors.New("unexpected status")
)
