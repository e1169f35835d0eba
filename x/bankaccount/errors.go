package bankaccount

import "github.com/iov-one/jointbank/errors"

// Bankaccount reserves 1200~1219 error codes.
//
// Every error is extended from one of the root classes, so that callers
// can test either for the exact reason or for its category.
var (
	// Authorization errors.
	ErrNotOwner          = errors.ErrUnauthorized.Extend(1200, "not an account owner")
	ErrNotRequestCreator = errors.ErrUnauthorized.Extend(1201, "only request creator can withdraw")

	// Constraint violations.
	ErrOwnershipLimitExceeded = errors.ErrConstraint.Extend(1202, "ownership limit exceeded")
	ErrDuplicateOwner         = errors.ErrConstraint.Extend(1203, "owner duplicated")
	ErrAccountLimitExceeded   = errors.ErrConstraint.Extend(1204, "account limit exceeded")
	ErrBalanceOverflow        = errors.ErrConstraint.Extend(1205, "balance overflow")

	// Missing entities.
	ErrRequestNotFound = errors.ErrNotFound.Extend(1206, "request does not exist")
	ErrAccountNotFound = errors.ErrNotFound.Extend(1207, "account does not exist")

	// State conflicts.
	ErrAlreadyApproved     = errors.ErrState.Extend(1208, "already approved")
	ErrAlreadyExecuted     = errors.ErrState.Extend(1209, "request already executed")
	ErrNotApproved         = errors.ErrState.Extend(1210, "request not approved")
	ErrInsufficientBalance = errors.ErrState.Extend(1211, "insufficient balance")
)
