package api

import (
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	cases := map[string]struct {
		units    uint64
		decimals int32
		want     string
	}{
		"zero":          {units: 0, decimals: 2, want: "0.00"},
		"cents":         {units: 5, decimals: 2, want: "0.05"},
		"whole":         {units: 12300, decimals: 2, want: "123.00"},
		"no decimals":   {units: 42, decimals: 0, want: "42"},
		"max value":     {units: 18446744073709551615, decimals: 2, want: "184467440737095516.15"},
		"many decimals": {units: 1, decimals: 6, want: "0.000001"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a := NewAmount(tc.units, tc.decimals)
			assert.Equal(t, tc.want, a.Decimal)
			assert.Equal(t, tc.units, a.Units)
		})
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		input   string
		want    uint64
		wantErr *errors.Error
	}{
		"whole":          {input: "12", want: 1200},
		"fraction":       {input: "0.05", want: 5},
		"trailing zeros": {input: "1.500", want: 150},
		"too precise":    {input: "0.001", wantErr: errors.ErrAmount},
		"negative":       {input: "-1", wantErr: errors.ErrAmount},
		"garbage":        {input: "one", wantErr: errors.ErrInput},
		"overflow":       {input: "184467440737095516.16", wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.input, 2)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
