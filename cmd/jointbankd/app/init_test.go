package app_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/jointbank"
	jointbankd "github.com/iov-one/jointbank/cmd/jointbankd/app"
	"github.com/iov-one/jointbank/commands/server"
	"github.com/iov-one/jointbank/gconf"
	"github.com/iov-one/jointbank/jbtest"
	"github.com/iov-one/jointbank/store"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestGenInitOptions(t *testing.T) {
	addr := jbtest.NewAddress()
	raw, err := jointbankd.GenInitOptions([]string{addr.String(), "777"})
	require.NoError(t, err)

	var opts jointbank.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	db := store.MemStore()
	require.NoError(t, jointbankd.Initializers().FromGenesis(opts, db))

	balance, err := cash.NewController().Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(777), balance)

	var conf bankaccount.Configuration
	require.NoError(t, gconf.Load(db, "bankaccount", &conf))
	assert.Equal(t, addr, conf.Owner)
	assert.Equal(t, uint32(bankaccount.DefaultMaxOwners), conf.MaxOwners)
}

func TestGenInitOptionsErrors(t *testing.T) {
	_, err := jointbankd.GenInitOptions([]string{"not an address"})
	assert.Error(t, err)

	_, err = jointbankd.GenInitOptions([]string{jbtest.NewAddress().String(), "-5"})
	assert.Error(t, err)
}

func TestGenerateCoinKey(t *testing.T) {
	addr, keys, err := jointbankd.GenerateCoinKey()
	require.NoError(t, err)
	require.NoError(t, addr.Validate())

	var out struct {
		Address jointbank.Address `json:"address"`
		Pubkey  string            `json:"pub_key"`
	}
	require.NoError(t, json.Unmarshal([]byte(keys), &out))
	assert.Equal(t, addr, out.Address)
	assert.Len(t, out.Pubkey, 64)
}

func TestGenerateApp(t *testing.T) {
	abciApp, handler, err := jointbankd.GenerateApp(server.AppOptions{Logger: log.NewNopLogger()})
	require.NoError(t, err)
	assert.NotNil(t, abciApp)
	assert.NotNil(t, handler)
}
