package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank/crypto"
	"github.com/iov-one/jointbank/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction without its signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures of signers who signed the
	// transaction.
	GetSignatures() []*StdSignature
}

// StdSignature is a single signature of a transaction.
type StdSignature struct {
	Sequence  int64            `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence"`
	Pubkey    crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey"`
	Signature []byte           `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.Pubkey) == 0 {
		return errors.Wrap(ErrMissingSignature, "missing public key")
	}
	if err := s.Pubkey.Validate(); err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(ErrMissingSignature, "empty signature")
	}
	return nil
}

// Marshal serializes the signature.
func (s *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignaturePB)(s))
}

// Unmarshal loads the signature.
func (s *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignaturePB)(s))
}

type stdSignaturePB StdSignature

func (m *stdSignaturePB) Reset()         { *m = stdSignaturePB{} }
func (m *stdSignaturePB) String() string { return proto.CompactTextString(m) }
func (*stdSignaturePB) ProtoMessage()    {}
