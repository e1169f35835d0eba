package jbtest

import (
	"context"
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/stretchr/testify/assert"
)

func TestCtxAuth(t *testing.T) {
	alice := NewAddress()
	bob := NewAddress()

	a := &CtxAuth{Key: "auth"}
	other := &CtxAuth{Key: "other"}
	ctx := context.Background()

	assert.Nil(t, a.Signers(ctx))

	ctx = a.SetSigners(ctx, alice, bob)
	assert.Equal(t, []jointbank.Address{alice, bob}, a.Signers(ctx))
	assert.Nil(t, other.Signers(ctx), "keys are isolated")
	assert.Equal(t, alice, jointbank.MainSigner(ctx, a))

	ctx = a.SetSigners(ctx)
	assert.Empty(t, a.Signers(ctx))
}
