package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/jointbank/notify"
	"github.com/iov-one/jointbank/store"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestStreamEvents(t *testing.T) {
	f := newFixture(t)

	ps, err := notify.NewPubSub(log.NewNopLogger())
	require.NoError(t, err)
	defer ps.Stop()

	srv := httptest.NewServer(NewServer(bankaccount.NewView(memSnapshot{db: store.MemStore()}), WithEvents(ps)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequest("GET", srv.URL+"/events?query="+
		"bankaccount.event%3D%27Deposit%27", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	require.True(t, strings.HasPrefix(lines.Text(), ": subscribed"), lines.Text())

	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	ps.Notify(ctx, &bankaccount.WithdrawRequested{AccountID: 0, Requester: f.bob, Amount: 3, Time: now})
	ps.Notify(ctx, &bankaccount.Deposited{AccountID: 0, Depositor: f.alice, Amount: 7, Time: now})

	var event, data string
	for lines.Scan() {
		line := lines.Text()
		if strings.HasPrefix(line, "event: ") {
			event = strings.TrimPrefix(line, "event: ")
		}
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
			break
		}
	}
	require.NoError(t, lines.Err())
	assert.Equal(t, "Deposit", event)

	var env notify.Envelope
	require.NoError(t, json.Unmarshal([]byte(data), &env))
	assert.Equal(t, "Deposit", env.Name)
	assert.Equal(t, now, env.Time)
	assert.Equal(t, "Deposit", env.Tags["bankaccount.event"])
}

func TestStreamEventsInvalidQuery(t *testing.T) {
	ps, err := notify.NewPubSub(log.NewNopLogger())
	require.NoError(t, err)
	defer ps.Stop()

	s := NewServer(bankaccount.NewView(memSnapshot{db: store.MemStore()}), WithEvents(ps))
	code := get(t, s, "/events?query=%3D%3D%3D", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
