package jbtest

import (
	"context"
	"fmt"

	"github.com/iov-one/jointbank"
)

// CtxAuth is a mock implementing jointbank.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context.
	Key string
}

var _ jointbank.Authenticator = (*CtxAuth)(nil)

type ctxAuthKey string

// SetSigners returns a context that authenticates given addresses.
func (a *CtxAuth) SetSigners(ctx jointbank.Context, signers ...jointbank.Address) jointbank.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), signers)
}

// Signers implements jointbank.Authenticator.
func (a *CtxAuth) Signers(ctx jointbank.Context) []jointbank.Address {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	signers, ok := val.([]jointbank.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []jointbank.Address got %T", val))
	}
	return signers
}
