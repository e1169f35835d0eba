package cash

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/orm"
)

// Controller is the functionality needed by handlers that move value
// between wallets.
type Controller interface {
	Balance(db jointbank.ReadOnlyKVStore, owner jointbank.Address) (uint64, error)
	MoveCoins(db jointbank.KVStore, src, dest jointbank.Address, amount uint64) error
	IssueCoins(db jointbank.KVStore, dest jointbank.Address, amount uint64) error
}

// BaseController is the default wallet controller. Besides moving value
// between wallets it keeps the custody wallet of shared accounts.
type BaseController struct {
	bucket  orm.ModelBucket
	custody jointbank.Address
}

var _ Controller = BaseController{}

// NewController returns a controller using the default wallet bucket and
// custody address.
func NewController() BaseController {
	return BaseController{
		bucket:  NewBucket(),
		custody: CustodyAddress,
	}
}

// Balance returns the value held by given address. An address without a
// wallet holds nothing.
func (c BaseController) Balance(db jointbank.ReadOnlyKVStore, owner jointbank.Address) (uint64, error) {
	w, err := c.wallet(db, owner)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient value, it fails.
func (c BaseController) MoveCoins(db jointbank.KVStore, src, dest jointbank.Address, amount uint64) error {
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if amount == 0 {
		return nil
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if _, err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if _, err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

// IssueCoins adds the given amount to the destination wallet. Fails if it
// overflows the wallet.
func (c BaseController) IssueCoins(db jointbank.KVStore, dest jointbank.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	_, err = c.bucket.Put(db, dest, recipient)
	return err
}

// Collect moves value from the wallet of a depositor into custody.
func (c BaseController) Collect(db jointbank.KVStore, from jointbank.Address, amount uint64) error {
	return c.MoveCoins(db, from, c.custody, amount)
}

// Release moves value from custody into the wallet of given address.
func (c BaseController) Release(db jointbank.KVStore, to jointbank.Address, amount uint64) error {
	return c.MoveCoins(db, c.custody, to, amount)
}

// Custody returns the address of the custody wallet.
func (c BaseController) Custody() jointbank.Address {
	return c.custody
}

// wallet loads the wallet of given address, returning an empty one if it
// does not exist yet.
func (c BaseController) wallet(db jointbank.ReadOnlyKVStore, owner jointbank.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, owner, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Owner: owner.Clone()}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}
