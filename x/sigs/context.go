package sigs

import (
	"context"

	"github.com/iov-one/jointbank"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx jointbank.Context, signers []jointbank.Address) jointbank.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gives access to the signers verified by the Decorator.
type Authenticate struct{}

var _ jointbank.Authenticator = Authenticate{}

// Signers returns who signed the current Context.
// May be empty
func (Authenticate) Signers(ctx jointbank.Context) []jointbank.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]jointbank.Address)
	return val
}

// HasAddress returns true if addr signed the current Context.
func (a Authenticate) HasAddress(ctx jointbank.Context, addr jointbank.Address) bool {
	for _, s := range a.Signers(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
