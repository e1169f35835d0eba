package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank/errors"
)

// counter is a model used by the tests of this package.
type counter struct {
	Owners [][]byte `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
	Count  int64    `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func (c *counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterPB)(c))
}

func (c *counter) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*counterPB)(c))
}

type counterPB counter

func (m *counterPB) Reset()         { *m = counterPB{} }
func (m *counterPB) String() string { return proto.CompactTextString(m) }
func (*counterPB) ProtoMessage()    {}

// other is a model of a different type than counter.
type other struct {
	counter
}

func ownersIndexer(m Model) ([][]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owners, nil
}
