package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/jbtest"
	"github.com/iov-one/jointbank/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const testChainID = "test-chain-1"

func newTestApp(t *testing.T, db dbm.DB, notifier jointbank.Notifier) BaseApp {
	t.Helper()

	qr := jointbank.NewQueryRouter()
	qr.Register("/raw", rawQuery{})

	s, err := NewStoreApp("test", iavl.NewCommitStoreDB(db), qr, context.Background())
	require.NoError(t, err)
	s.WithNotifier(notifier)

	r := NewRouter()
	r.Handle(&setMsg{}, setHandler{})
	return NewBaseApp(s, decodeSet, r, false)
}

func queryRaw(t *testing.T, a BaseApp, key string) []jointbank.Model {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: "/raw", Data: []byte(key)})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var keys, values ResultSet
	require.NoError(t, keys.Unmarshal(res.Key))
	require.NoError(t, values.Unmarshal(res.Value))
	models, err := JoinResults(&keys, &values)
	require.NoError(t, err)
	return models
}

func TestAppLifecycle(t *testing.T) {
	rec := &jbtest.Recorder{}
	a := newTestApp(t, dbm.NewMemDB(), rec)

	a.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: []byte(`{}`)})
	assert.Equal(t, testChainID, a.GetChainID())

	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: now}})

	check := a.CheckTx([]byte("color=blue"))
	require.Equal(t, uint32(0), check.Code, check.Log)
	assert.Equal(t, "color", check.Log)

	deliver := a.DeliverTx([]byte("color=blue"))
	require.Equal(t, uint32(0), deliver.Code, deliver.Log)
	assert.Equal(t, []byte("color"), deliver.Data)
	require.Len(t, deliver.Tags, 2)
	assert.Equal(t, "test.event", string(deliver.Tags[0].Key))
	assert.Equal(t, "test.key", string(deliver.Tags[1].Key))
	assert.Equal(t, "color", string(deliver.Tags[1].Value))

	// Nothing is visible or published before the block is committed.
	assert.Empty(t, queryRaw(t, a, "color"))
	assert.Empty(t, rec.Events())

	a.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := a.Commit()
	assert.NotEmpty(t, commit.Data)

	models := queryRaw(t, a, "color")
	require.Len(t, models, 1)
	assert.Equal(t, "blue", string(models[0].Value))

	assert.Equal(t, []string{"KeySet"}, rec.Names())
	assert.Equal(t, now, rec.Events()[0].EventTime())

	info := a.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, "test", info.Data)
}

func TestAppRejectsInvalidTransactions(t *testing.T) {
	rec := &jbtest.Recorder{}
	a := newTestApp(t, dbm.NewMemDB(), rec)
	a.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: []byte(`{}`)})
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	inputCode, _ := errors.ABCIInfo(errors.ErrInput, false)
	emptyCode, _ := errors.ABCIInfo(errors.ErrEmpty, false)

	cases := map[string]struct {
		tx   string
		code uint32
	}{
		"not decodable":  {tx: "garbage", code: inputCode},
		"invalid msg":    {tx: "=value", code: emptyCode},
		"empty tx bytes": {tx: "", code: inputCode},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			check := a.CheckTx([]byte(tc.tx))
			assert.Equal(t, tc.code, check.Code, check.Log)
			deliver := a.DeliverTx([]byte(tc.tx))
			assert.Equal(t, tc.code, deliver.Code, deliver.Log)
			assert.Empty(t, deliver.Tags)
		})
	}

	a.Commit()
	assert.Empty(t, rec.Events())
}

func TestAppRestart(t *testing.T) {
	db := dbm.NewMemDB()
	a := newTestApp(t, db, jointbank.NopNotifier{})
	a.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: []byte(`{}`)})
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})
	res := a.DeliverTx([]byte("name=alice"))
	require.Equal(t, uint32(0), res.Code, res.Log)
	a.Commit()

	restarted := newTestApp(t, db, jointbank.NopNotifier{})
	assert.Equal(t, testChainID, restarted.GetChainID())
	height, ok := jointbank.GetHeight(restarted.BlockContext())
	require.True(t, ok)
	assert.Equal(t, int64(1), height)

	models := queryRaw(t, restarted, "name")
	require.Len(t, models, 1)
	assert.Equal(t, "alice", string(models[0].Value))

	// Genesis can be loaded only once.
	assert.Panics(t, func() {
		restarted.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: []byte(`{}`)})
	})
}

func TestAppInitChain(t *testing.T) {
	cases := map[string]struct {
		chainID  string
		appState string
		wantErr  *errors.Error
	}{
		"valid":             {chainID: testChainID, appState: `{"x": 1}`},
		"missing app state": {chainID: testChainID, appState: "", wantErr: errors.ErrState},
		"invalid app state": {chainID: testChainID, appState: `[1, 2]`, wantErr: errors.ErrInput},
		"invalid chain id":  {chainID: "x", appState: `{}`, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a := newTestApp(t, dbm.NewMemDB(), jointbank.NopNotifier{})
			err := a.parseAppState([]byte(tc.appState), tc.chainID, nil)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}

func TestAppQueryErrors(t *testing.T) {
	a := newTestApp(t, dbm.NewMemDB(), jointbank.NopNotifier{})

	notFound, _ := errors.ABCIInfo(errors.ErrNotFound, false)
	res := a.Query(abci.RequestQuery{Path: "/nothing"})
	assert.Equal(t, notFound, res.Code)

	input, _ := errors.ABCIInfo(errors.ErrInput, false)
	res = a.Query(abci.RequestQuery{Path: "/raw", Height: 42})
	assert.Equal(t, input, res.Code)
}

func TestSplitPath(t *testing.T) {
	path, mod := splitPath("/accounts/owner?prefix")
	assert.Equal(t, "/accounts/owner", path)
	assert.Equal(t, "prefix", mod)

	path, mod = splitPath("/accounts")
	assert.Equal(t, "/accounts", path)
	assert.Equal(t, "", mod)
}
