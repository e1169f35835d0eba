package cash

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

const optKey = "cash"

// GenesisWallet is used to parse the json from genesis file.
type GenesisWallet struct {
	Address jointbank.Address `json:"address"`
	Balance uint64            `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ jointbank.Initializer = Initializer{}

// FromGenesis will parse initial wallets from genesis and save them to the
// database.
func (Initializer) FromGenesis(opts jointbank.Options, db jointbank.KVStore) error {
	var wallets []GenesisWallet
	if err := opts.ReadOptions(optKey, &wallets); err != nil {
		return err
	}
	ctrl := NewController()
	for i, w := range wallets {
		if w.Address.Equals(ctrl.Custody()) {
			return errors.Wrapf(errors.ErrInput, "wallet %d: custody cannot be funded", i)
		}
		if err := ctrl.IssueCoins(db, w.Address, w.Balance); err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
	}
	return nil
}
