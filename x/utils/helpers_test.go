package utils

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// writeHandler writes a key and then fails if err is set.
type writeHandler struct {
	key, value []byte
	err        error
}

var _ jointbank.Handler = writeHandler{}

func (h writeHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &jointbank.CheckResult{Log: "checked"}, nil
}

func (h writeHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &jointbank.DeliverResult{Log: "delivered"}, nil
}

// panicHandler always panics.
type panicHandler struct{}

func (panicHandler) Check(jointbank.Context, jointbank.KVStore, jointbank.Tx) (*jointbank.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(jointbank.Context, jointbank.KVStore, jointbank.Tx) (*jointbank.DeliverResult, error) {
	panic(errors.Wrap(errors.ErrState, "deliver"))
}
