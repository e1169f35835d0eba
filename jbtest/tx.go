package jbtest

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Tx represents a jointbank transaction.
//
// Use this transaction implementation when testing handlers, when the
// serialization of the transaction is not relevant.
type Tx struct {
	Msg jointbank.Msg
	Err error
}

var _ jointbank.Tx = (*Tx)(nil)

// GetMsg implements jointbank.Tx.
func (tx *Tx) GetMsg() (jointbank.Msg, error) {
	return tx.Msg, tx.Err
}

// Unmarshal implements jointbank.Tx. It always fails.
func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "jbtest.Tx cannot be deserialized")
}

// Marshal implements jointbank.Tx. It always fails.
func (tx *Tx) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrHuman, "jbtest.Tx cannot be serialized")
}
