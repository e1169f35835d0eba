package bankaccount

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

const (
	pathCreateAccount   = "bankaccount/create"
	pathDeposit         = "bankaccount/deposit"
	pathRequestWithdraw = "bankaccount/request"
	pathApproveWithdraw = "bankaccount/approve"
	pathWithdraw        = "bankaccount/withdraw"

	// maxOwnerList bounds the message size. Ownership limits are enforced
	// by the configuration when the message is processed.
	maxOwnerList = 32
)

// CreateAccountMsg opens an account. The signer is added as an owner and
// must not be part of Owners.
type CreateAccountMsg struct {
	Owners []jointbank.Address `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners"`
}

var _ jointbank.Msg = (*CreateAccountMsg)(nil)

// Path returns the routing path for this message.
func (CreateAccountMsg) Path() string {
	return pathCreateAccount
}

// Validate makes sure all owners are valid addresses. Duplicates are
// rejected by the handler, after the ownership limit check.
func (m *CreateAccountMsg) Validate() error {
	if len(m.Owners) > maxOwnerList {
		return errors.Field("Owners", errors.ErrInput, "too many owners")
	}
	var err error
	for i, o := range m.Owners {
		err = errors.AppendField(err, fieldIndex("Owners", i), o.Validate())
	}
	return err
}

// Marshal serializes the message.
func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createAccountMsgPB)(m))
}

// Unmarshal loads the message.
func (m *CreateAccountMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createAccountMsgPB)(m))
}

type createAccountMsgPB CreateAccountMsg

func (m *createAccountMsgPB) Reset()         { *m = createAccountMsgPB{} }
func (m *createAccountMsgPB) String() string { return proto.CompactTextString(m) }
func (*createAccountMsgPB) ProtoMessage()    {}

// DepositMsg moves value from the wallet of the signer to an account.
type DepositMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	Amount    uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

var _ jointbank.Msg = (*DepositMsg)(nil)

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return pathDeposit
}

// Validate accepts any deposit. A zero amount is a valid deposit.
func (m *DepositMsg) Validate() error {
	return nil
}

// Marshal serializes the message.
func (m *DepositMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*depositMsgPB)(m))
}

// Unmarshal loads the message.
func (m *DepositMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*depositMsgPB)(m))
}

type depositMsgPB DepositMsg

func (m *depositMsgPB) Reset()         { *m = depositMsgPB{} }
func (m *depositMsgPB) String() string { return proto.CompactTextString(m) }
func (*depositMsgPB) ProtoMessage()    {}

// RequestWithdrawMsg proposes a withdrawal from an account.
type RequestWithdrawMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	Amount    uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

var _ jointbank.Msg = (*RequestWithdrawMsg)(nil)

// Path returns the routing path for this message.
func (RequestWithdrawMsg) Path() string {
	return pathRequestWithdraw
}

// Validate accepts any request. The amount is checked against the balance
// only when the withdrawal is executed.
func (m *RequestWithdrawMsg) Validate() error {
	return nil
}

// Marshal serializes the message.
func (m *RequestWithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*requestWithdrawMsgPB)(m))
}

// Unmarshal loads the message.
func (m *RequestWithdrawMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*requestWithdrawMsgPB)(m))
}

type requestWithdrawMsgPB RequestWithdrawMsg

func (m *requestWithdrawMsgPB) Reset()         { *m = requestWithdrawMsgPB{} }
func (m *requestWithdrawMsgPB) String() string { return proto.CompactTextString(m) }
func (*requestWithdrawMsgPB) ProtoMessage()    {}

// ApproveWithdrawMsg approves a pending withdrawal request.
type ApproveWithdrawMsg struct {
	AccountID  uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	WithdrawID uint64 `protobuf:"varint,2,opt,name=withdraw_id,json=withdrawId,proto3" json:"withdraw_id"`
}

var _ jointbank.Msg = (*ApproveWithdrawMsg)(nil)

// Path returns the routing path for this message.
func (ApproveWithdrawMsg) Path() string {
	return pathApproveWithdraw
}

// Validate accepts any approval.
func (m *ApproveWithdrawMsg) Validate() error {
	return nil
}

// Marshal serializes the message.
func (m *ApproveWithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*approveWithdrawMsgPB)(m))
}

// Unmarshal loads the message.
func (m *ApproveWithdrawMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*approveWithdrawMsgPB)(m))
}

type approveWithdrawMsgPB ApproveWithdrawMsg

func (m *approveWithdrawMsgPB) Reset()         { *m = approveWithdrawMsgPB{} }
func (m *approveWithdrawMsgPB) String() string { return proto.CompactTextString(m) }
func (*approveWithdrawMsgPB) ProtoMessage()    {}

// WithdrawMsg executes an approved withdrawal request. Only the requester
// may send it.
type WithdrawMsg struct {
	AccountID  uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	WithdrawID uint64 `protobuf:"varint,2,opt,name=withdraw_id,json=withdrawId,proto3" json:"withdraw_id"`
}

var _ jointbank.Msg = (*WithdrawMsg)(nil)

// Path returns the routing path for this message.
func (WithdrawMsg) Path() string {
	return pathWithdraw
}

// Validate accepts any withdrawal.
func (m *WithdrawMsg) Validate() error {
	return nil
}

// Marshal serializes the message.
func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*withdrawMsgPB)(m))
}

// Unmarshal loads the message.
func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*withdrawMsgPB)(m))
}

type withdrawMsgPB WithdrawMsg

func (m *withdrawMsgPB) Reset()         { *m = withdrawMsgPB{} }
func (m *withdrawMsgPB) String() string { return proto.CompactTextString(m) }
func (*withdrawMsgPB) ProtoMessage()    {}
