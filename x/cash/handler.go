package cash

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r jointbank.Registry, auth jointbank.Authenticator, ctrl Controller) {
	r.Handle(&SendMsg{}, SendHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register this bucket as "/wallets".
func RegisterQuery(qr jointbank.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves value between wallets.
type SendHandler struct {
	auth jointbank.Authenticator
	ctrl Controller
}

var _ jointbank.Handler = SendHandler{}

// Check verifies the message and the authentication.
func (h SendHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{}, nil
}

// Deliver moves the value from the signer wallet to the destination.
func (h SendHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	msg, src, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, src, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &jointbank.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx jointbank.Context, tx jointbank.Tx) (*SendMsg, jointbank.Address, error) {
	var msg SendMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	src := jointbank.MainSigner(ctx, h.auth)
	if src == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if src.Equals(CustodyAddress) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "custody wallet")
	}
	return &msg, src, nil
}
