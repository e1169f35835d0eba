package bankaccount

import (
	"encoding/json"

	"github.com/iov-one/jointbank/errors"
)

// Quorum is the policy deciding how many owners must approve a withdrawal
// before it can be executed.
type Quorum string

const (
	// QuorumMajority requires strictly more than half of the owners.
	QuorumMajority Quorum = "majority"
	// QuorumUnanimous requires every owner.
	QuorumUnanimous Quorum = "unanimous"
)

// Validate returns an error for unknown policies.
func (q Quorum) Validate() error {
	switch q {
	case QuorumMajority, QuorumUnanimous:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "unknown quorum policy %q", string(q))
}

// Required returns the number of approvals needed for an account with the
// given number of owners. A single owner account needs only its owner.
func (q Quorum) Required(owners int) int {
	if owners <= 0 {
		return 1
	}
	if q == QuorumUnanimous {
		return owners
	}
	return owners/2 + 1
}

// Reached returns true if the approvals satisfy the policy.
func (q Quorum) Reached(approvals, owners int) bool {
	return approvals >= q.Required(owners)
}

// UnmarshalJSON accepts a policy name. An empty value selects the majority
// policy.
func (q *Quorum) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "quorum must be a string")
	}
	if s == "" {
		*q = QuorumMajority
		return nil
	}
	v := Quorum(s)
	if err := v.Validate(); err != nil {
		return err
	}
	*q = v
	return nil
}
