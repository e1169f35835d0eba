package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/jbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

var eventTime = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type testEvent struct {
	Name    string `json:"name"`
	Account string `json:"account"`
}

func (e *testEvent) EventName() string       { return e.Name }
func (e *testEvent) EventTime() time.Time    { return eventTime }
func (e *testEvent) Tags() map[string]string { return map[string]string{"test.name": e.Name, "test.account": e.Account} }

func TestEnvelope(t *testing.T) {
	env, err := NewEnvelope(&testEvent{Name: "Deposit", Account: "3"})
	require.NoError(t, err)
	assert.Equal(t, "Deposit", env.Name)
	assert.Equal(t, eventTime, env.Time)
	assert.Len(t, env.ID, 36)
	assert.JSONEq(t, `{"name": "Deposit", "account": "3"}`, string(env.Data))

	other, err := NewEnvelope(&testEvent{Name: "Deposit"})
	require.NoError(t, err)
	assert.NotEqual(t, env.ID, other.ID)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	var back Envelope
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, env.Tags, back.Tags)
}

func TestLoggerAndMulti(t *testing.T) {
	var buf bytes.Buffer
	var rec jbtest.Recorder
	n := Multi(NewLogger(log.NewTMLogger(&buf)), &rec, jointbank.NopNotifier{})

	n.Notify(context.Background(), &testEvent{Name: "Withdraw", Account: "7"})

	assert.Equal(t, []string{"Withdraw"}, rec.Names())
	assert.Contains(t, buf.String(), "Withdraw")
	assert.Contains(t, buf.String(), "test.account=7")
	assert.Contains(t, buf.String(), "module=notify")
}
