package jointbank

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr := Address([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19})

	cases := map[string]struct {
		enc     string
		want    Address
		wantErr *errors.Error
	}{
		"bare hex": {
			enc:  "000102030405060708090a0b0c0d0e0f10111213",
			want: addr,
		},
		"hex prefix": {
			enc:  "hex:000102030405060708090A0B0C0D0E0F10111213",
			want: addr,
		},
		"bech32 prefix": {
			enc:  "bech32:jbank1qqqsyqcyq5rqwzqfpg9scrgwpugpzysna48ntm",
			want: addr,
		},
		"bare bech32": {
			enc:  "jbank1qqqsyqcyq5rqwzqfpg9scrgwpugpzysna48ntm",
			want: addr,
		},
		"foreign bech32 prefix": {
			enc:     "bech32:tiov1w3jhxapdwpshjmr0v9jqymqq4y",
			wantErr: errors.ErrInput,
		},
		"too short": {
			enc:     "hex:0001",
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			enc:     "base64:AAECAw==",
			wantErr: errors.ErrType,
		},
		"not hex": {
			enc:     "zz",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAddress(tc.enc)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressString(t *testing.T) {
	addr := NewAddress([]byte("alice"))
	require.NoError(t, addr.Validate())

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.True(t, addr.Equals(parsed))
	assert.Equal(t, "(nil)", Address(nil).String())
}

func TestAddressJSON(t *testing.T) {
	type owners struct {
		Owners []Address `json:"owners"`
	}
	in := owners{Owners: []Address{NewAddress([]byte("a")), NewAddress([]byte("b"))}}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out owners
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)

	var bech owners
	require.NoError(t, json.Unmarshal([]byte(`{"owners":["`+in.Owners[0].String()+`"]}`), &bech))
	assert.Equal(t, in.Owners[:1], bech.Owners)
}

func TestAddressClone(t *testing.T) {
	a := NewAddress([]byte("carol"))
	b := a.Clone()
	b[0]++
	assert.False(t, a.Equals(b))
	assert.Nil(t, Address(nil).Clone())
}
