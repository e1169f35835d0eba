package sigs

import "github.com/iov-one/jointbank/errors"

// x/sigs reserves 1120~1129 error codes.
var (
	ErrInvalidSequence  = errors.ErrInput.Extend(1120, "invalid sequence")
	ErrInvalidSignature = errors.ErrUnauthorized.Extend(1121, "invalid signature")
	ErrMissingSignature = errors.ErrUnauthorized.Extend(1122, "missing signature")
)
