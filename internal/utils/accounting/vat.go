package accounting

import "github.com/shopspring/decimal"

// ExtractVAT splits a tax-inclusive gross amount into net and VAT at the
// given rate (e.g. 0.15 for 15%): vat = round(gross * r / (1 + r), 2),
// net = gross - vat, so net + vat == gross always holds exactly.
//
// VAT is extracted per fee classification rather than per booking so the
// rounding error stays bounded to one cent per classification instead of
// accumulating across every record.
func ExtractVAT(gross, rate decimal.Decimal) (net, vat decimal.Decimal) {
	if rate.IsZero() || gross.IsZero() {
		return gross, decimal.Zero
	}
	one := decimal.NewFromInt(1)
	vat = gross.Mul(rate).Div(one.Add(rate)).Round(2)
	net = gross.Sub(vat)
	return net, vat
}

// ValidateBalance checks that debit and credit totals agree to the cent.
func ValidateBalance(debitTotal, creditTotal decimal.Decimal) bool {
	return debitTotal.Round(2).Equal(creditTotal.Round(2))
}
