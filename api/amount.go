package api

import (
	"math/big"

	"github.com/iov-one/jointbank/errors"
	"github.com/shopspring/decimal"
)

// DefaultDecimals is the number of fractional digits of the value unit.
// An amount of 12345 base units renders as "123.45".
const DefaultDecimals = 2

// Amount is a value in base units together with its decimal rendering.
type Amount struct {
	Units   uint64 `json:"units"`
	Decimal string `json:"decimal"`
}

// NewAmount renders units with given number of fractional digits.
func NewAmount(units uint64, decimals int32) Amount {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(units), -decimals)
	return Amount{Units: units, Decimal: d.StringFixed(decimals)}
}

// ParseAmount converts a decimal string into base units. More fractional
// digits than the unit allows are rejected.
func ParseAmount(s string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "amount %q", s)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(errors.ErrAmount, "negative amount %q", s)
	}
	units := d.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(errors.ErrAmount, "amount %q has more than %d decimals", s, decimals)
	}
	n := units.BigInt()
	if !n.IsUint64() {
		return 0, errors.Wrapf(errors.ErrOverflow, "amount %q", s)
	}
	return n.Uint64(), nil
}
