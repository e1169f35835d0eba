/*
Package app links together all the various components
to construct the jointbankd application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/app"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/gconf"
	"github.com/iov-one/jointbank/store/iavl"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/iov-one/jointbank/x/sigs"
	"github.com/iov-one/jointbank/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() jointbank.Authenticator {
	return jointbank.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the sequence
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching wallet transfers and all joint
// account operations.
func Router(authFn jointbank.Authenticator) *app.Router {
	r := app.NewRouter()
	wallets := cash.NewController()
	cash.RegisterRoutes(r, authFn, wallets)
	bankaccount.RegisterRoutes(r, authFn, wallets)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/gconf", "/accounts",
// "/accounts/owner" and "/withdrawals"
func QueryRouter() jointbank.QueryRouter {
	r := jointbank.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		gconf.RegisterQuery,
		bankaccount.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() jointbank.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() jointbank.Initializer {
	return jointbank.ChainInitializers(
		cash.Initializer{},
		bankaccount.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h jointbank.Handler,
	tx jointbank.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (jointbank.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
