package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/iov-one/jointbank/x/sigs"
)

// Tx is the transaction format of the jointbank chain. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CashSendMsg                       *cash.SendMsg                       `protobuf:"bytes,20,opt,name=cash_send_msg,json=cashSendMsg,proto3" json:"cash_send_msg,omitempty"`
	BankaccountCreateMsg              *bankaccount.CreateAccountMsg       `protobuf:"bytes,30,opt,name=bankaccount_create_msg,json=bankaccountCreateMsg,proto3" json:"bankaccount_create_msg,omitempty"`
	BankaccountDepositMsg             *bankaccount.DepositMsg             `protobuf:"bytes,31,opt,name=bankaccount_deposit_msg,json=bankaccountDepositMsg,proto3" json:"bankaccount_deposit_msg,omitempty"`
	BankaccountRequestMsg             *bankaccount.RequestWithdrawMsg     `protobuf:"bytes,32,opt,name=bankaccount_request_msg,json=bankaccountRequestMsg,proto3" json:"bankaccount_request_msg,omitempty"`
	BankaccountApproveMsg             *bankaccount.ApproveWithdrawMsg     `protobuf:"bytes,33,opt,name=bankaccount_approve_msg,json=bankaccountApproveMsg,proto3" json:"bankaccount_approve_msg,omitempty"`
	BankaccountWithdrawMsg            *bankaccount.WithdrawMsg            `protobuf:"bytes,34,opt,name=bankaccount_withdraw_msg,json=bankaccountWithdrawMsg,proto3" json:"bankaccount_withdraw_msg,omitempty"`
	BankaccountUpdateConfigurationMsg *bankaccount.UpdateConfigurationMsg `protobuf:"bytes,35,opt,name=bankaccount_update_configuration_msg,json=bankaccountUpdateConfigurationMsg,proto3" json:"bankaccount_update_configuration_msg,omitempty"`
}

// make sure tx fulfills all interfaces
var _ jointbank.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (jointbank.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode transaction: %s", err)
	}
	return tx, nil
}

// NewTx wraps a message into a transaction without signatures.
func NewTx(msg jointbank.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.CashSendMsg = m
	case *bankaccount.CreateAccountMsg:
		tx.BankaccountCreateMsg = m
	case *bankaccount.DepositMsg:
		tx.BankaccountDepositMsg = m
	case *bankaccount.RequestWithdrawMsg:
		tx.BankaccountRequestMsg = m
	case *bankaccount.ApproveWithdrawMsg:
		tx.BankaccountApproveMsg = m
	case *bankaccount.WithdrawMsg:
		tx.BankaccountWithdrawMsg = m
	case *bankaccount.UpdateConfigurationMsg:
		tx.BankaccountUpdateConfigurationMsg = m
	default:
		return nil, errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return &tx, nil
}

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (jointbank.Msg, error) {
	var msgs []jointbank.Msg
	add := func(present bool, m jointbank.Msg) {
		if present {
			msgs = append(msgs, m)
		}
	}
	add(tx.CashSendMsg != nil, tx.CashSendMsg)
	add(tx.BankaccountCreateMsg != nil, tx.BankaccountCreateMsg)
	add(tx.BankaccountDepositMsg != nil, tx.BankaccountDepositMsg)
	add(tx.BankaccountRequestMsg != nil, tx.BankaccountRequestMsg)
	add(tx.BankaccountApproveMsg != nil, tx.BankaccountApproveMsg)
	add(tx.BankaccountWithdrawMsg != nil, tx.BankaccountWithdrawMsg)
	add(tx.BankaccountUpdateConfigurationMsg != nil, tx.BankaccountUpdateConfigurationMsg)

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrState, "message payload is empty")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d messages in a single transaction", len(msgs))
	}
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(tx))
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txPB)(tx))
}

type txPB Tx

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}
