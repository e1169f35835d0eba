package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/orm"
)

// Wallet is the external balance of a single address.
type Wallet struct {
	Owner   jointbank.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Balance uint64            `protobuf:"varint,2,opt,name=balance,proto3" json:"balance"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires the owner to be a valid address.
func (w *Wallet) Validate() error {
	return errors.Wrap(w.Owner.Validate(), "owner")
}

// Add increases the balance, failing on overflow.
func (w *Wallet) Add(amount uint64) error {
	if w.Balance+amount < w.Balance {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s", w.Owner)
	}
	w.Balance += amount
	return nil
}

// Subtract decreases the balance, failing if the wallet does not hold
// enough value.
func (w *Wallet) Subtract(amount uint64) error {
	if w.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s holds %d, need %d", w.Owner, w.Balance, amount)
	}
	w.Balance -= amount
	return nil
}

// Marshal serializes the wallet.
func (w *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletPB)(w))
}

// Unmarshal loads the wallet.
func (w *Wallet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*walletPB)(w))
}

type walletPB Wallet

func (m *walletPB) Reset()         { *m = walletPB{} }
func (m *walletPB) String() string { return proto.CompactTextString(m) }
func (*walletPB) ProtoMessage()    {}

// NewBucket returns a bucket that stores wallets, keyed by the owner
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("wallets", &Wallet{})
}

// CustodyAddress is the wallet that holds the value of all shared
// accounts.
var CustodyAddress = jointbank.NewAddress([]byte("cash/custody"))
