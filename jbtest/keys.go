package jbtest

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/crypto"
)

// NewKey returns a new random private key.
func NewKey() crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewAddress returns the address of a new random key.
func NewAddress() jointbank.Address {
	return NewKey().PublicKey().Address()
}
