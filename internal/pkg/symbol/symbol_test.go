package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAcceptedForms(t *testing.T) {
	cases := []struct {
		in   string
		base string
		quot string
	}{
		{"BTC", "BTC", "USDT"},
		{"BTCUSDT", "BTC", "USDT"},
		{"BTC/USDT", "BTC", "USDT"},
		{"BINANCE:APEUSDT", "APE", "USDT"},
		{"ONDO/USDC", "ONDO", "USDC"},
		{"  SOL  ", "SOL", "USDT"},
		{"1000PEPE", "1000PEPE", "USDT"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			sym, err := Normalize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.base, sym.Base)
			assert.Equal(t, tc.quot, sym.Quote)
			assert.Equal(t, tc.base+"/"+tc.quot, sym.Internal())
			assert.Equal(t, tc.base+tc.quot, sym.Binance())
		})
	}
}

func TestNormalizeRejections(t *testing.T) {
	cases := []string{
		"",
		"btc",              // lowercase is not folded, it is rejected
		"BTC1/XXX",         // quote not on the allow-list
		"TOOLONGSYMBOL123", // base longer than 10
		"B",                // base shorter than 2
		"BTC/USDT/EUR",
		"BTC$",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			_, err := Normalize(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
