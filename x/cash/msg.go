package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

const maxMemoSize = 128

// SendMsg moves value from the wallet of the signer to another wallet.
type SendMsg struct {
	Destination jointbank.Address `protobuf:"bytes,1,opt,name=destination,proto3" json:"destination"`
	Amount      uint64            `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
	Memo        string            `protobuf:"bytes,3,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ jointbank.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if m.Amount == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	}
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.ErrInput)
	}
	return err
}

// Marshal serializes the message.
func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

// Unmarshal loads the message.
func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsgPB)(m))
}

type sendMsgPB SendMsg

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}
