package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/jbtest"
	"github.com/iov-one/jointbank/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	ctx := jointbank.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &jbtest.Tx{}

	r := NewRecovery()
	_, err := r.Check(ctx, db, tx, panicHandler{})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "check")

	_, err = r.Deliver(ctx, db, tx, panicHandler{})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, buf.String(), "transaction panic")

	_, err = r.Deliver(ctx, db, tx, writeHandler{key: []byte("k"), value: []byte("v")})
	assert.NoError(t, err)
}
