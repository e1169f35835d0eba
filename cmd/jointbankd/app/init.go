package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/api"
	"github.com/iov-one/jointbank/commands/server"
	"github.com/iov-one/jointbank/crypto"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/iov-one/jointbank/x/cash"
	abci "github.com/tendermint/tendermint/abci/types"
)

// DefaultBalance is the amount of units given to the genesis wallet.
const DefaultBalance = 123456789

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// You can set the address of the wallet and its balance as arguments. If
// no address is given, a new key is generated and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr jointbank.Address
	if len(args) > 0 {
		var err error
		addr, err = jointbank.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
	} else {
		bz, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = bz
		fmt.Println(keys)
	}

	balance := uint64(DefaultBalance)
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "invalid balance %q", args[1])
		}
		balance = n
	}

	conf := bankaccount.DefaultConfiguration()
	conf.Owner = addr
	opts := map[string]interface{}{
		"cash": []cash.GenesisWallet{
			{Address: addr, Balance: balance},
		},
		"conf": map[string]interface{}{
			"bankaccount": conf,
		},
	}
	return json.MarshalIndent(opts, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command. Next to
// the abci application it returns the read only http API, serving from
// the committed state of the same store.
func GenerateApp(opts server.AppOptions) (abci.Application, http.Handler, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if opts.Home != "" {
		dbPath = filepath.Join(opts.Home, "jointbank.db")
	}

	application, err := Application("jointbank", Stack(), TxDecoder, dbPath, opts.Debug)
	if err != nil {
		return nil, nil, err
	}
	if opts.Notifier != nil {
		application.WithNotifier(opts.Notifier)
	}
	application.WithLogger(opts.Logger)

	apiOpts := []api.Option{api.WithLogger(opts.Logger.With("module", "api"))}
	if opts.Events != nil {
		apiOpts = append(apiOpts, api.WithEvents(opts.Events))
	}
	if opts.Decimals > 0 {
		apiOpts = append(apiOpts, api.WithDecimals(opts.Decimals))
	}
	handler := api.NewServer(bankaccount.NewView(application.StoreApp), apiOpts...)
	return application, handler, nil
}

type output struct {
	Address jointbank.Address `json:"address"`
	Pubkey  string            `json:"pub_key"`
	Secret  string            `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in a client to use them
func GenerateCoinKey() (jointbank.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{
		Address: addr,
		Pubkey:  hex.EncodeToString(pubKey),
		Secret:  hex.EncodeToString(privKey),
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
