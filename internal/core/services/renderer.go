package services

import (
	"bytes"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	"github.com/greenlinkgolf/cashbook_app/internal/utils"
)

const (
	maxReferenceLen   = 20
	maxDescriptionLen = 40
	nonTaxableMarker  = "0"
	lineTerminator    = "\r\n"
)

// RenderJournal serializes a balanced journal into the exact byte shape
// the external accounting package imports. Every output row starts from
// the layout's template row so incidental constant columns (batch codes,
// exchange rates) survive verbatim; role-mapped columns are then
// overwritten from the journal line.
func RenderJournal(journal *domain.Journal, layout *domain.LayoutDescriptor, mapping *domain.MappingConfiguration, date time.Time) ([]byte, error) {
	if debits, credits := journal.DebitTotal(), journal.CreditTotal(); !debits.Equal(credits) {
		return nil, &apperrors.BalanceError{DebitTotal: debits, CreditTotal: credits}
	}

	sign := layout.Sign
	if mapping.SignOverride != nil {
		sign = *mapping.SignOverride
	}
	taxCode := mapping.TaxCode
	if taxCode == "" {
		taxCode = "1"
	}
	vatAccount := formatAccount(mapping.VATAccount, layout.AccountDigitsOnly)

	width := len(layout.Columns)
	if len(layout.TemplateRow) > width {
		width = len(layout.TemplateRow)
	}

	var buf bytes.Buffer
	if layout.HasHeader {
		buf.WriteString(strings.Join(layout.Columns, layout.Delimiter))
		buf.WriteString(lineTerminator)
	}

	// re-checked from the assembled rows, not trusted from the journal
	renderedDebits, renderedCredits := decimal.Zero, decimal.Zero

	for _, line := range journal.Lines {
		row := make([]string, width)
		copy(row, layout.TemplateRow)

		setCell(row, layout, domain.RoleDate, date.Format(layout.DateFormat))
		account := formatAccount(line.Account, layout.AccountDigitsOnly)
		setCell(row, layout, domain.RoleAccount, account)
		setCell(row, layout, domain.RoleReference, utils.SanitizeText(line.Reference, maxReferenceLen))
		setCell(row, layout, domain.RoleDescription, utils.SanitizeText(line.Description, maxDescriptionLen))

		signed := signedAmount(line, sign)
		if layout.HasSplitAmounts() {
			setCell(row, layout, domain.RoleDebit, utils.FormatAmount(line.Debit))
			setCell(row, layout, domain.RoleCredit, utils.FormatAmount(line.Credit))
		} else {
			setCell(row, layout, domain.RoleAmount, utils.FormatAmount(signed))
			for _, idx := range layout.MirrorColumns {
				if idx < len(row) {
					row[idx] = utils.FormatAmount(signed)
				}
			}
		}

		// tax columns carry the configured code only on taxable revenue
		// credits; the VAT payable line and all debit lines stay marked
		// non-taxable
		taxable := line.Credit.IsPositive() && account != vatAccount && line.TaxAmount.IsPositive()
		if _, ok := layout.ColumnIndex(domain.RoleTaxFlag); ok {
			if taxable {
				setCell(row, layout, domain.RoleTaxFlag, taxCode)
			} else {
				setCell(row, layout, domain.RoleTaxFlag, nonTaxableMarker)
			}
		}
		if _, ok := layout.ColumnIndex(domain.RoleTaxAmount); ok {
			taxAmount := decimal.Zero
			if taxable {
				taxAmount = line.TaxAmount
				if !layout.HasSplitAmounts() && signed.IsNegative() {
					taxAmount = taxAmount.Neg()
				}
			}
			setCell(row, layout, domain.RoleTaxAmount, utils.FormatAmount(taxAmount))
		}

		renderedDebits = renderedDebits.Add(line.Debit)
		renderedCredits = renderedCredits.Add(line.Credit)

		buf.WriteString(strings.Join(row, layout.Delimiter))
		buf.WriteString(lineTerminator)
	}

	if !renderedDebits.Equal(renderedCredits) {
		return nil, &apperrors.BalanceError{DebitTotal: renderedDebits, CreditTotal: renderedCredits}
	}

	return buf.Bytes(), nil
}

// setCell writes a value into the row column mapped to role, if the
// layout knows that role.
func setCell(row []string, layout *domain.LayoutDescriptor, role domain.ColumnRole, value string) {
	if idx, ok := layout.ColumnIndex(role); ok && idx < len(row) {
		row[idx] = value
	}
}

// signedAmount applies the sign convention to a line for single-amount
// layouts: under debit-positive, credits flip negative; under
// debit-negative, debits do.
func signedAmount(line domain.JournalLine, sign domain.SignConvention) decimal.Decimal {
	amount := line.Amount()
	switch {
	case sign == domain.DebitPositive && !line.IsDebit():
		return amount.Neg()
	case sign == domain.DebitNegative && line.IsDebit():
		return amount.Neg()
	}
	return amount
}

// formatAccount renders a GL code the way the sample rendered its own:
// bare digits when the sample was digits-only, separator-stripped free
// form otherwise.
func formatAccount(code string, digitsOnly bool) string {
	if digitsOnly {
		return utils.DigitsOnly(code)
	}
	return utils.SanitizeGLCode(code)
}
