package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenlinkgolf/cashbook_app/internal/utils/accounting"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExtractVAT_StandardRate(t *testing.T) {
	net, vat := accounting.ExtractVAT(d("920.00"), d("0.15"))

	assert.True(t, vat.Equal(d("120.00")), "vat = %s", vat)
	assert.True(t, net.Equal(d("800.00")), "net = %s", net)
}

func TestExtractVAT_RoundTripAlwaysExact(t *testing.T) {
	grosses := []string{"0.01", "0.03", "1.15", "100.00", "999.99", "123456.78"}
	rates := []string{"0", "0.15", "0.20"}

	for _, g := range grosses {
		for _, r := range rates {
			gross := d(g)
			net, vat := accounting.ExtractVAT(gross, d(r))

			require.True(t, net.Add(vat).Equal(gross),
				"gross %s at rate %s: net %s + vat %s", g, r, net, vat)
			assert.False(t, vat.IsNegative())
			assert.True(t, vat.Exponent() >= -2, "vat %s has sub-cent precision", vat)
		}
	}
}

func TestExtractVAT_ZeroRate(t *testing.T) {
	net, vat := accounting.ExtractVAT(d("500.00"), decimal.Zero)

	assert.True(t, net.Equal(d("500.00")))
	assert.True(t, vat.IsZero())
}

func TestValidateBalance(t *testing.T) {
	assert.True(t, accounting.ValidateBalance(d("920.00"), d("920.00")))
	assert.True(t, accounting.ValidateBalance(d("920.004"), d("920.001")))
	assert.False(t, accounting.ValidateBalance(d("920.00"), d("919.99")))
}
