package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	"github.com/greenlinkgolf/cashbook_app/internal/utils/accounting"
)

// BuildJournal aggregates one payment date's paid ledger entries into a
// balanced multi-line journal: one debit line per payment method, one
// credit line per fee classification (net of VAT) and one credit line for
// VAT payable. It is a pure function of its inputs; an unbalanced result
// is surfaced as a BalanceError, never silently corrected.
func BuildJournal(date time.Time, records []domain.PaymentRecord, mapping *domain.MappingConfiguration, vatRate decimal.Decimal) (*domain.Journal, error) {
	dateStr := date.Format("2006-01-02")

	// Accounting cannot proceed with unattributed or non-positive amounts;
	// list every offending booking so the operator fixes them in one pass.
	var unattributed, nonPositive []string
	for _, rec := range records {
		if rec.Method == "" {
			unattributed = append(unattributed, rec.BookingRef)
		}
		if !rec.Amount.IsPositive() {
			nonPositive = append(nonPositive, rec.BookingRef)
		}
	}
	if len(unattributed) > 0 {
		return nil, &apperrors.DataIntegrityError{
			Reason:      "payment records without a payment method",
			BookingRefs: unattributed,
		}
	}
	if len(nonPositive) > 0 {
		return nil, &apperrors.DataIntegrityError{
			Reason:      "payment records with non-positive amounts",
			BookingRefs: nonPositive,
		}
	}

	byMethod := make(map[domain.PaymentMethod]decimal.Decimal)
	byClass := make(map[domain.FeeClassification]decimal.Decimal)
	grossTotal := decimal.Zero
	paymentIDs := make([]string, 0, len(records))
	for _, rec := range records {
		class := rec.Classification
		if class == "" {
			class = domain.FeeOther
		}
		byMethod[rec.Method] = byMethod[rec.Method].Add(rec.Amount)
		byClass[class] = byClass[class].Add(rec.Amount)
		grossTotal = grossTotal.Add(rec.Amount)
		paymentIDs = append(paymentIDs, rec.PaymentID)
	}

	// Both aggregates must cover the same money.
	methodTotal, classTotal := decimal.Zero, decimal.Zero
	for _, amt := range byMethod {
		methodTotal = methodTotal.Add(amt)
	}
	for _, amt := range byClass {
		classTotal = classTotal.Add(amt)
	}
	if !methodTotal.Equal(grossTotal) || !classTotal.Equal(grossTotal) {
		return nil, apperrors.NewAppError(500, "aggregate totals diverge from gross total", nil)
	}

	// Fail closed before any money math: every method in use needs a debit
	// account, and VAT needs somewhere to go.
	var missing []string
	if mapping == nil {
		missing = append(missing, "mapping configuration")
	} else {
		if mapping.VATAccount == "" {
			missing = append(missing, "VAT output account")
		}
		for _, method := range sortedMethods(byMethod) {
			if _, ok := mapping.DebitAccountFor(method); !ok {
				missing = append(missing, fmt.Sprintf("debit account for %s", method))
			}
		}
		for class := range byClass {
			if mapping.RevenueAccountFor(class) == "" {
				missing = append(missing, fmt.Sprintf("revenue account for %s", class))
			}
		}
	}
	if len(missing) > 0 {
		return nil, &apperrors.ConfigurationError{Missing: missing}
	}

	// VAT is extracted per classification, keeping the rounding error
	// bounded to one cent per classification instead of per booking.
	netByClass := make(map[domain.FeeClassification]decimal.Decimal, len(byClass))
	vatByClass := make(map[domain.FeeClassification]decimal.Decimal, len(byClass))
	netTotal, vatTotal := decimal.Zero, decimal.Zero
	for class, gross := range byClass {
		net, vat := accounting.ExtractVAT(gross, vatRate)
		netByClass[class] = net
		vatByClass[class] = vat
		netTotal = netTotal.Add(net)
		vatTotal = vatTotal.Add(vat)
	}
	if !netTotal.Add(vatTotal).Equal(grossTotal) {
		return nil, &apperrors.BalanceError{DebitTotal: grossTotal, CreditTotal: netTotal.Add(vatTotal)}
	}

	journal := &domain.Journal{
		Date:             date,
		GrossTotal:       grossTotal,
		NetTotal:         netTotal,
		VATTotal:         vatTotal,
		ByMethod:         byMethod,
		ByClassification: byClass,
		PaymentIDs:       paymentIDs,
	}
	reference := "CB" + date.Format("20060102")

	for _, method := range sortedMethods(byMethod) {
		account, _ := mapping.DebitAccountFor(method)
		journal.Lines = append(journal.Lines, domain.JournalLine{
			Account:     account,
			Debit:       byMethod[method],
			Credit:      decimal.Zero,
			Reference:   reference,
			Description: fmt.Sprintf("%s takings %s", method, dateStr),
		})
	}

	for _, class := range sortedClassifications(byClass) {
		net := netByClass[class]
		if net.IsZero() {
			continue
		}
		journal.Lines = append(journal.Lines, domain.JournalLine{
			Account:     mapping.RevenueAccountFor(class),
			Debit:       decimal.Zero,
			Credit:      net,
			Reference:   reference,
			Description: fmt.Sprintf("%s revenue %s", class, dateStr),
			TaxCode:     mapping.TaxCode,
			TaxAmount:   vatByClass[class],
		})
	}

	if vatTotal.IsPositive() {
		journal.Lines = append(journal.Lines, domain.JournalLine{
			Account:     mapping.VATAccount,
			Debit:       decimal.Zero,
			Credit:      vatTotal,
			Reference:   reference,
			Description: "VAT output " + dateStr,
		})
	}

	if debits, credits := journal.DebitTotal(), journal.CreditTotal(); !debits.Equal(credits) {
		// an unbalanced journal is worse than no journal
		return nil, &apperrors.BalanceError{DebitTotal: debits, CreditTotal: credits}
	}

	return journal, nil
}

// sortedMethods orders methods CASH, CARD, EFT, ONLINE, then any others
// alphabetically.
func sortedMethods(byMethod map[domain.PaymentMethod]decimal.Decimal) []domain.PaymentMethod {
	ordered := make([]domain.PaymentMethod, 0, len(byMethod))
	seen := make(map[domain.PaymentMethod]bool, len(byMethod))
	for _, method := range domain.DebitLineOrder {
		if _, ok := byMethod[method]; ok {
			ordered = append(ordered, method)
			seen[method] = true
		}
	}
	var rest []domain.PaymentMethod
	for method := range byMethod {
		if !seen[method] {
			rest = append(rest, method)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(ordered, rest...)
}

// sortedClassifications orders classifications GOLF, CART, COMPETITION,
// OTHER, then any others alphabetically.
func sortedClassifications(byClass map[domain.FeeClassification]decimal.Decimal) []domain.FeeClassification {
	ordered := make([]domain.FeeClassification, 0, len(byClass))
	seen := make(map[domain.FeeClassification]bool, len(byClass))
	for _, class := range domain.CreditLineOrder {
		if _, ok := byClass[class]; ok {
			ordered = append(ordered, class)
			seen[class] = true
		}
	}
	var rest []domain.FeeClassification
	for class := range byClass {
		if !seen[class] {
			rest = append(rest, class)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(ordered, rest...)
}
