package bankaccount

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ jointbank.Initializer = Initializer{}

// FromGenesis stores the configuration found under conf.bankaccount. A
// genesis without configuration keeps the defaults.
func (Initializer) FromGenesis(opts jointbank.Options, db jointbank.KVStore) error {
	conf := DefaultConfiguration()
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "init configuration")
	}
}
