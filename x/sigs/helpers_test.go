package sigs

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// signedTx is a transaction carrying a raw payload.
type signedTx struct {
	payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ jointbank.Tx = (*signedTx)(nil)

func newSignedTx(payload string) *signedTx {
	return &signedTx{payload: []byte(payload)}
}

func (tx *signedTx) GetSignatures() []*StdSignature { return tx.Signatures }

func (tx *signedTx) GetSignBytes() ([]byte, error) { return tx.payload, nil }

func (tx *signedTx) GetMsg() (jointbank.Msg, error) {
	return nil, errors.Wrap(errors.ErrHuman, "no message")
}

func (tx *signedTx) Marshal() ([]byte, error) { return tx.payload, nil }

func (tx *signedTx) Unmarshal(raw []byte) error {
	tx.payload = raw
	return nil
}

// signerRecorder stores the signers seen on each call.
type signerRecorder struct {
	Signers []jointbank.Address
}

var _ jointbank.Handler = (*signerRecorder)(nil)

func (s *signerRecorder) Check(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	s.Signers = Authenticate{}.Signers(ctx)
	return &jointbank.CheckResult{}, nil
}

func (s *signerRecorder) Deliver(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	s.Signers = Authenticate{}.Signers(ctx)
	return &jointbank.DeliverResult{}, nil
}
