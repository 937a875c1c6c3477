package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is one debit or credit line of a day's journal. Exactly one
// of Debit/Credit is nonzero. TaxCode/TaxAmount are populated only on
// credit lines representing taxable revenue.
type JournalLine struct {
	Account     string          `json:"account"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	TaxCode     string          `json:"taxCode,omitempty"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalLine) IsDebit() bool { return l.Debit.IsPositive() }

// Amount returns whichever side of the line is nonzero.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// Journal is one payment date's takings as a balanced set of debit/credit
// lines, ready for rendering into the external package's import format.
// It is ephemeral: rebuilt for every export, never persisted as such.
type Journal struct {
	Date             time.Time                           `json:"date"`
	Lines            []JournalLine                       `json:"lines"`
	GrossTotal       decimal.Decimal                     `json:"grossTotal"`
	NetTotal         decimal.Decimal                     `json:"netTotal"`
	VATTotal         decimal.Decimal                     `json:"vatTotal"`
	ByMethod         map[PaymentMethod]decimal.Decimal   `json:"byMethod"`
	ByClassification map[FeeClassification]decimal.Decimal `json:"byClassification"`
	// PaymentIDs are the ledger entries consumed by this journal, tagged
	// with the batch reference once the export commits.
	PaymentIDs []string `json:"paymentIDs"`
}

// DebitTotal sums all debit lines.
func (j *Journal) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// CreditTotal sums all credit lines.
func (j *Journal) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// Balanced reports whether debits equal credits to the cent.
func (j *Journal) Balanced() bool {
	return j.DebitTotal().Equal(j.CreditTotal())
}
