package bankaccount

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/orm"
)

// Account is the unit of custody. Owners are fixed at creation and an
// account is never removed.
type Account struct {
	ID             uint64              `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Owners         []jointbank.Address `protobuf:"bytes,2,rep,name=owners,proto3" json:"owners"`
	Balance        uint64              `protobuf:"varint,3,opt,name=balance,proto3" json:"balance"`
	NextWithdrawID uint64              `protobuf:"varint,4,opt,name=next_withdraw_id,json=nextWithdrawId,proto3" json:"next_withdraw_id"`
	CreatedAt      int64               `protobuf:"varint,5,opt,name=created_at,json=createdAt,proto3" json:"created_at"`
}

var _ orm.Model = (*Account)(nil)

// Validate ensures the owner set is a non empty set of valid addresses.
func (a *Account) Validate() error {
	if len(a.Owners) == 0 {
		return errors.Field("Owners", errors.ErrEmpty, "account without owners")
	}
	var err error
	for i, o := range a.Owners {
		if e := o.Validate(); e != nil {
			err = errors.AppendField(err, fieldIndex("Owners", i), e)
			continue
		}
		for _, prev := range a.Owners[:i] {
			if prev.Equals(o) {
				err = errors.AppendField(err, fieldIndex("Owners", i), ErrDuplicateOwner)
			}
		}
	}
	if a.CreatedAt <= 0 {
		err = errors.AppendField(err, "CreatedAt", errors.ErrEmpty)
	}
	return err
}

// HasOwner returns true if the address is one of the account owners.
func (a *Account) HasOwner(addr jointbank.Address) bool {
	return containsAddress(a.Owners, addr)
}

// Marshal serializes the account.
func (a *Account) Marshal() ([]byte, error) {
	return proto.Marshal((*accountPB)(a))
}

// Unmarshal loads the account.
func (a *Account) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*accountPB)(a))
}

type accountPB Account

func (m *accountPB) Reset()         { *m = accountPB{} }
func (m *accountPB) String() string { return proto.CompactTextString(m) }
func (*accountPB) ProtoMessage()    {}

// WithdrawalRequest is a proposed debit of an account. The requester is
// always the first approval.
type WithdrawalRequest struct {
	AccountID  uint64              `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	ID         uint64              `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	Amount     uint64              `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	Requester  jointbank.Address   `protobuf:"bytes,4,opt,name=requester,proto3" json:"requester"`
	Approvals  []jointbank.Address `protobuf:"bytes,5,rep,name=approvals,proto3" json:"approvals"`
	Executed   bool                `protobuf:"varint,6,opt,name=executed,proto3" json:"executed"`
	CreatedAt  int64               `protobuf:"varint,7,opt,name=created_at,json=createdAt,proto3" json:"created_at"`
	ExecutedAt int64               `protobuf:"varint,8,opt,name=executed_at,json=executedAt,proto3" json:"executed_at,omitempty"`
}

var _ orm.Model = (*WithdrawalRequest)(nil)

// Validate ensures the requester is among the approvals and that no
// participant approved twice.
func (r *WithdrawalRequest) Validate() error {
	err := errors.AppendField(nil, "Requester", r.Requester.Validate())
	if !containsAddress(r.Approvals, r.Requester) {
		err = errors.AppendField(err, "Approvals", errors.Wrap(errors.ErrState, "requester must approve"))
	}
	for i, a := range r.Approvals {
		if containsAddress(r.Approvals[:i], a) {
			err = errors.AppendField(err, fieldIndex("Approvals", i), ErrAlreadyApproved)
		}
	}
	if r.CreatedAt <= 0 {
		err = errors.AppendField(err, "CreatedAt", errors.ErrEmpty)
	}
	if r.Executed && r.ExecutedAt <= 0 {
		err = errors.AppendField(err, "ExecutedAt", errors.ErrEmpty)
	}
	return err
}

// HasApproved returns true if the address approved this request.
func (r *WithdrawalRequest) HasApproved(addr jointbank.Address) bool {
	return containsAddress(r.Approvals, addr)
}

// Marshal serializes the request.
func (r *WithdrawalRequest) Marshal() ([]byte, error) {
	return proto.Marshal((*withdrawalPB)(r))
}

// Unmarshal loads the request.
func (r *WithdrawalRequest) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*withdrawalPB)(r))
}

type withdrawalPB WithdrawalRequest

func (m *withdrawalPB) Reset()         { *m = withdrawalPB{} }
func (m *withdrawalPB) String() string { return proto.CompactTextString(m) }
func (*withdrawalPB) ProtoMessage()    {}

const ownerIndex = "owner"

// NewAccountBucket returns a bucket keeping accounts under their sequence
// id. The owner index is the participant directory: it maps each owner to
// the accounts they co-own, ordered by account id.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("accounts", &Account{}, orm.WithIndex(ownerIndex, ownerIndexer, false))
}

func ownerIndexer(m orm.Model) ([][]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	keys := make([][]byte, len(a.Owners))
	for i, o := range a.Owners {
		keys[i] = o
	}
	return keys, nil
}

// NewWithdrawalBucket returns a bucket keeping withdrawal requests. Keys
// are the account id followed by the request id, so a prefix scan lists
// the requests of a single account in order.
func NewWithdrawalBucket() orm.ModelBucket {
	return orm.NewModelBucket("withdrawals", &WithdrawalRequest{})
}

// accountKey returns the primary key of an account.
func accountKey(id uint64) []byte {
	return orm.SequenceKey(id)
}

// withdrawalKey returns the primary key of a withdrawal request.
func withdrawalKey(accountID, withdrawID uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key, accountID)
	binary.BigEndian.PutUint64(key[8:], withdrawID)
	return key
}

func containsAddress(set []jointbank.Address, addr jointbank.Address) bool {
	for _, a := range set {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

func fieldIndex(name string, i int) string {
	return name + "." + strconv.Itoa(i)
}

// unixTime converts a stored timestamp back into a time value.
func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
