package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	"github.com/greenlinkgolf/cashbook_app/internal/core/services"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func testMapping() *domain.MappingConfiguration {
	return &domain.MappingConfiguration{
		VATAccount: "2150000",
		DebitAccounts: map[domain.PaymentMethod]string{
			domain.MethodCash: "8400000",
			domain.MethodCard: "8410000",
			domain.MethodEFT:  "8420000",
		},
		RevenueAccounts: map[domain.FeeClassification]string{
			domain.FeeGolf: "1000000",
			domain.FeeCart: "1010000",
		},
		DefaultRevenueAccount: "1090000",
		TaxCode:               "1",
	}
}

func paidRecord(id, ref string, amount string, method domain.PaymentMethod, class domain.FeeClassification) domain.PaymentRecord {
	return domain.PaymentRecord{
		PaymentID:      id,
		BookingRef:     ref,
		PlayerName:     "Player " + id,
		Amount:         d(amount),
		Method:         method,
		Classification: class,
		Status:         domain.PaymentPaid,
		CreatedAt:      testDate.Add(9 * time.Hour),
	}
}

// A typical Saturday: R500 cash green fees, R300 card green fees, R120
// cash cart hire. 15% VAT extracted per classification.
func TestBuildJournal_TypicalDay(t *testing.T) {
	records := []domain.PaymentRecord{
		paidRecord("p1", "BK-001", "500.00", domain.MethodCash, domain.FeeGolf),
		paidRecord("p2", "BK-002", "300.00", domain.MethodCard, domain.FeeGolf),
		paidRecord("p3", "BK-003", "120.00", domain.MethodCash, domain.FeeCart),
	}

	journal, err := services.BuildJournal(testDate, records, testMapping(), d("0.15"))
	require.NoError(t, err)

	assert.True(t, journal.GrossTotal.Equal(d("920.00")), "gross = %s", journal.GrossTotal)
	assert.True(t, journal.VATTotal.Equal(d("120.00")), "vat = %s", journal.VATTotal)
	assert.True(t, journal.NetTotal.Equal(d("800.00")), "net = %s", journal.NetTotal)
	assert.True(t, journal.Balanced())
	assert.True(t, journal.DebitTotal().Equal(d("920.00")))

	// two debit lines (CASH then CARD), two revenue credits (GOLF then
	// CART), one VAT credit
	require.Len(t, journal.Lines, 5)

	assert.Equal(t, "8400000", journal.Lines[0].Account)
	assert.True(t, journal.Lines[0].Debit.Equal(d("620.00")))
	assert.Equal(t, "8410000", journal.Lines[1].Account)
	assert.True(t, journal.Lines[1].Debit.Equal(d("300.00")))

	golfLine := journal.Lines[2]
	assert.Equal(t, "1000000", golfLine.Account)
	assert.True(t, golfLine.Credit.Equal(d("695.65")), "golf net = %s", golfLine.Credit)
	assert.Equal(t, "1", golfLine.TaxCode)
	assert.True(t, golfLine.TaxAmount.Equal(d("104.35")))

	cartLine := journal.Lines[3]
	assert.Equal(t, "1010000", cartLine.Account)
	assert.True(t, cartLine.Credit.Equal(d("104.35")), "cart net = %s", cartLine.Credit)
	assert.True(t, cartLine.TaxAmount.Equal(d("15.65")))

	vatLine := journal.Lines[4]
	assert.Equal(t, "2150000", vatLine.Account)
	assert.True(t, vatLine.Credit.Equal(d("120.00")))

	assert.Equal(t, "CB20250601", journal.Lines[0].Reference)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, journal.PaymentIDs)
}

func TestBuildJournal_UnclassifiedFallsBackToDefaultAccount(t *testing.T) {
	records := []domain.PaymentRecord{
		paidRecord("p1", "BK-001", "100.00", domain.MethodCash, ""),
	}

	journal, err := services.BuildJournal(testDate, records, testMapping(), d("0.15"))
	require.NoError(t, err)

	var revenueLine *domain.JournalLine
	for i := range journal.Lines {
		if journal.Lines[i].Account == "1090000" {
			revenueLine = &journal.Lines[i]
		}
	}
	require.NotNil(t, revenueLine, "expected a credit on the default revenue account")
	assert.True(t, journal.Balanced())
}

func TestBuildJournal_UnattributedMethodListsBookings(t *testing.T) {
	records := []domain.PaymentRecord{
		paidRecord("p1", "BK-001", "100.00", domain.MethodCash, domain.FeeGolf),
		paidRecord("p2", "BK-002", "50.00", "", domain.FeeGolf),
		paidRecord("p3", "BK-003", "75.00", "", domain.FeeCart),
	}

	_, err := services.BuildJournal(testDate, records, testMapping(), d("0.15"))
	require.Error(t, err)

	var integrityErr *apperrors.DataIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.ElementsMatch(t, []string{"BK-002", "BK-003"}, integrityErr.BookingRefs)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuildJournal_NonPositiveAmountRejected(t *testing.T) {
	rec := paidRecord("p1", "BK-001", "100.00", domain.MethodCash, domain.FeeGolf)
	rec.Amount = d("-10.00")

	_, err := services.BuildJournal(testDate, []domain.PaymentRecord{rec}, testMapping(), d("0.15"))

	var integrityErr *apperrors.DataIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, []string{"BK-001"}, integrityErr.BookingRefs)
}

func TestBuildJournal_MissingMappingFailsClosed(t *testing.T) {
	mapping := testMapping()
	mapping.VATAccount = ""
	delete(mapping.DebitAccounts, domain.MethodCard)

	records := []domain.PaymentRecord{
		paidRecord("p1", "BK-001", "100.00", domain.MethodCash, domain.FeeGolf),
		paidRecord("p2", "BK-002", "50.00", domain.MethodCard, domain.FeeGolf),
	}

	_, err := services.BuildJournal(testDate, records, mapping, d("0.15"))
	require.Error(t, err)

	var confErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Missing, "VAT output account")
	assert.Contains(t, confErr.Missing, "debit account for CARD")
}

func TestBuildJournal_NilMappingFailsClosed(t *testing.T) {
	records := []domain.PaymentRecord{
		paidRecord("p1", "BK-001", "100.00", domain.MethodCash, domain.FeeGolf),
	}

	_, err := services.BuildJournal(testDate, records, nil, d("0.15"))

	var confErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, []string{"mapping configuration"}, confErr.Missing)
}

func TestBuildJournal_ZeroRateOmitsVATLine(t *testing.T) {
	records := []domain.PaymentRecord{
		paidRecord("p1", "BK-001", "200.00", domain.MethodEFT, domain.FeeGolf),
	}

	journal, err := services.BuildJournal(testDate, records, testMapping(), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, journal.VATTotal.IsZero())
	for _, line := range journal.Lines {
		assert.NotEqual(t, "2150000", line.Account, "no VAT line expected at zero rate")
	}
	assert.True(t, journal.Balanced())
}

func TestBuildJournal_AwkwardCentsStillBalance(t *testing.T) {
	records := []domain.PaymentRecord{
		paidRecord("p1", "BK-001", "0.01", domain.MethodCash, domain.FeeGolf),
		paidRecord("p2", "BK-002", "33.33", domain.MethodCard, domain.FeeCart),
		paidRecord("p3", "BK-003", "999.99", domain.MethodEFT, domain.FeeOther),
	}

	journal, err := services.BuildJournal(testDate, records, testMapping(), d("0.15"))
	require.NoError(t, err)

	assert.True(t, journal.Balanced())
	assert.True(t, journal.NetTotal.Add(journal.VATTotal).Equal(journal.GrossTotal))
}
