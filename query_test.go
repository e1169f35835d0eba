package jointbank_test

import (
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/stretchr/testify/assert"
)

type staticQuery []jointbank.Model

func (q staticQuery) Query(jointbank.ReadOnlyKVStore, string, []byte) ([]jointbank.Model, error) {
	return q, nil
}

func TestQueryRouter(t *testing.T) {
	r := jointbank.NewQueryRouter()
	accounts := staticQuery{jointbank.Pair([]byte("a"), []byte("1"))}
	r.RegisterAll(
		func(qr jointbank.QueryRouter) { qr.Register("/wallets", staticQuery{}) },
		func(qr jointbank.QueryRouter) { qr.Register("/accounts", accounts) },
	)

	assert.Equal(t, []string{"/accounts", "/wallets"}, r.Paths())
	assert.Equal(t, accounts, r.Handler("/accounts"))
	assert.Nil(t, r.Handler("/withdrawals"))
}

func TestQueryRouterRejectsPaths(t *testing.T) {
	cases := map[string]string{
		"relative":       "accounts",
		"trailing slash": "/accounts/",
		"with modifier":  "/accounts?prefix",
		"duplicate":      "/wallets",
	}
	for testName, path := range cases {
		t.Run(testName, func(t *testing.T) {
			r := jointbank.NewQueryRouter()
			r.Register("/wallets", staticQuery{})
			assert.Panics(t, func() { r.Register(path, staticQuery{}) })
		})
	}
}
