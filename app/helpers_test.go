package app

import (
	"strings"
	"time"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/jbtest"
)

//-------------- counting -------------------------

// countingDecorator checks if it is called, once down, once out
type countingDecorator struct {
	called int
}

var _ jointbank.Decorator = (*countingDecorator)(nil)

func (c *countingDecorator) Check(ctx jointbank.Context, store jointbank.KVStore,
	tx jointbank.Tx, next jointbank.Checker) (*jointbank.CheckResult, error) {

	c.called++
	res, err := next.Check(ctx, store, tx)
	c.called++
	return res, err
}

func (c *countingDecorator) Deliver(ctx jointbank.Context, store jointbank.KVStore,
	tx jointbank.Tx, next jointbank.Deliverer) (*jointbank.DeliverResult, error) {

	c.called++
	res, err := next.Deliver(ctx, store, tx)
	c.called++
	return res, err
}

// countingHandler checks if it is called
type countingHandler struct {
	called int
}

var _ jointbank.Handler = (*countingHandler)(nil)

func (c *countingHandler) Check(jointbank.Context, jointbank.KVStore, jointbank.Tx) (*jointbank.CheckResult, error) {
	c.called++
	return &jointbank.CheckResult{}, nil
}

func (c *countingHandler) Deliver(jointbank.Context, jointbank.KVStore, jointbank.Tx) (*jointbank.DeliverResult, error) {
	c.called++
	return &jointbank.DeliverResult{}, nil
}

//----------- errors ------------

// errorDecorator returns the given error
type errorDecorator struct {
	err error
}

var _ jointbank.Decorator = errorDecorator{}

func (e errorDecorator) Check(jointbank.Context, jointbank.KVStore, jointbank.Tx, jointbank.Checker) (*jointbank.CheckResult, error) {
	return nil, e.err
}

func (e errorDecorator) Deliver(jointbank.Context, jointbank.KVStore, jointbank.Tx, jointbank.Deliverer) (*jointbank.DeliverResult, error) {
	return nil, e.err
}

//----------- key value writes ------------

// setMsg writes a single value under a key.
type setMsg struct {
	key   string
	value string
}

var _ jointbank.Msg = (*setMsg)(nil)

func (setMsg) Path() string { return "test/set" }

func (m *setMsg) Validate() error {
	if m.key == "" {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return nil
}

func (m *setMsg) Marshal() ([]byte, error) { return []byte(m.key + "=" + m.value), nil }

func (m *setMsg) Unmarshal(raw []byte) error {
	chunks := strings.SplitN(string(raw), "=", 2)
	if len(chunks) != 2 {
		return errors.Wrap(errors.ErrInput, "want key=value")
	}
	m.key, m.value = chunks[0], chunks[1]
	return nil
}

// decodeSet reads transactions in the key=value form.
func decodeSet(raw []byte) (jointbank.Tx, error) {
	var msg setMsg
	if err := msg.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &jbtest.Tx{Msg: &msg}, nil
}

// setHandler stores the message value and emits a keySet event.
type setHandler struct{}

var _ jointbank.Handler = setHandler{}

func (setHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	var msg setMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{Log: msg.key}, nil
}

func (setHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	var msg setMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	now, err := jointbank.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Set([]byte(msg.key), []byte(msg.value)); err != nil {
		return nil, err
	}
	return &jointbank.DeliverResult{
		Data:   []byte(msg.key),
		Events: []jointbank.Event{keySet{key: msg.key, time: now}},
	}, nil
}

type keySet struct {
	key  string
	time time.Time
}

func (keySet) EventName() string         { return "KeySet" }
func (e keySet) EventTime() time.Time    { return e.time }
func (e keySet) Tags() map[string]string { return map[string]string{"test.key": e.key, "test.event": "KeySet"} }

// rawQuery returns the value stored under the exact key.
type rawQuery struct{}

func (rawQuery) Query(db jointbank.ReadOnlyKVStore, _ string, key []byte) ([]jointbank.Model, error) {
	val, err := db.Get(key)
	if err != nil || val == nil {
		return nil, err
	}
	return []jointbank.Model{jointbank.Pair(key, val)}, nil
}
