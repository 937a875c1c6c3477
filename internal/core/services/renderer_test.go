package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	"github.com/greenlinkgolf/cashbook_app/internal/core/services"
)

// signedLayout mimics the common headerless cashbook export: a constant
// batch column, single signed amount, tax flag and tax amount, and a
// mirrored home-currency amount.
func signedLayout() *domain.LayoutDescriptor {
	return &domain.LayoutDescriptor{
		Delimiter: ",",
		HasHeader: false,
		Columns:   []string{"col_0", "col_1", "col_2", "col_3", "col_4", "col_5", "col_6", "col_7", "col_8", "col_9"},
		Roles: map[domain.ColumnRole]int{
			domain.RoleDate:        1,
			domain.RoleAccount:     3,
			domain.RoleDescription: 4,
			domain.RoleReference:   5,
			domain.RoleAmount:      6,
			domain.RoleTaxFlag:     7,
			domain.RoleTaxAmount:   8,
		},
		DateFormat:        "02/01/2006",
		Sign:              domain.DebitPositive,
		AccountDigitsOnly: true,
		MirrorColumns:     []int{9},
		TemplateRow:       []string{"GLJ", "15/05/2025", "14", "8400000", "desc", "ref", "250.00", "0", "0.00", "250.00"},
	}
}

func headeredSplitLayout() *domain.LayoutDescriptor {
	return &domain.LayoutDescriptor{
		Delimiter: ";",
		HasHeader: true,
		Columns:   []string{"Date", "Account", "Reference", "Description", "Debit", "Credit", "Tax Type", "Tax Amount"},
		Roles: map[domain.ColumnRole]int{
			domain.RoleDate:        0,
			domain.RoleAccount:     1,
			domain.RoleReference:   2,
			domain.RoleDescription: 3,
			domain.RoleDebit:       4,
			domain.RoleCredit:      5,
			domain.RoleTaxFlag:     6,
			domain.RoleTaxAmount:   7,
		},
		DateFormat:        "2006-01-02",
		Sign:              domain.DebitPositive,
		AccountDigitsOnly: false,
		TemplateRow:       []string{"2025-05-15", "8400/000", "REF", "DESC", "0.00", "0.00", "0", "0.00"},
	}
}

func buildTestJournal(t *testing.T) *domain.Journal {
	t.Helper()
	records := []domain.PaymentRecord{
		paidRecord("p1", "BK-001", "500.00", domain.MethodCash, domain.FeeGolf),
		paidRecord("p2", "BK-002", "300.00", domain.MethodCard, domain.FeeGolf),
		paidRecord("p3", "BK-003", "120.00", domain.MethodCash, domain.FeeCart),
	}
	journal, err := services.BuildJournal(testDate, records, testMapping(), d("0.15"))
	require.NoError(t, err)
	return journal
}

func TestRenderJournal_SignedAmountLayout(t *testing.T) {
	journal := buildTestJournal(t)

	out, err := services.RenderJournal(journal, signedLayout(), testMapping(), testDate)
	require.NoError(t, err)

	raw := string(out)
	assert.True(t, strings.HasSuffix(raw, "\r\n"), "rows must be CRLF terminated")
	rows := strings.Split(strings.TrimSuffix(raw, "\r\n"), "\r\n")
	require.Len(t, rows, 5, "no header row on a headerless layout")

	for _, row := range rows {
		cells := strings.Split(row, ",")
		require.Len(t, cells, 10)
		// constant columns come from the template untouched
		assert.Equal(t, "GLJ", cells[0])
		assert.Equal(t, "14", cells[2])
		assert.Equal(t, "01/06/2025", cells[1])
		// the mirror column tracks the signed amount
		assert.Equal(t, cells[6], cells[9])
	}

	// debit lines positive under DEBIT_POSITIVE, credits negative
	cashCells := strings.Split(rows[0], ",")
	assert.Equal(t, "8400000", cashCells[3])
	assert.Equal(t, "620.00", cashCells[6])
	assert.Equal(t, "0", cashCells[7], "debit lines are non-taxable")
	assert.Equal(t, "0.00", cashCells[8])

	golfCells := strings.Split(rows[2], ",")
	assert.Equal(t, "1000000", golfCells[3])
	assert.Equal(t, "-695.65", golfCells[6])
	assert.Equal(t, "1", golfCells[7], "revenue credits carry the tax code")
	assert.Equal(t, "-104.35", golfCells[8], "tax amount signed to match the line")

	vatCells := strings.Split(rows[4], ",")
	assert.Equal(t, "2150000", vatCells[3])
	assert.Equal(t, "-120.00", vatCells[6])
	assert.Equal(t, "0", vatCells[7], "the VAT payable line itself is non-taxable")
}

func TestRenderJournal_DebitNegativeFlipsSigns(t *testing.T) {
	journal := buildTestJournal(t)
	layout := signedLayout()
	layout.Sign = domain.DebitNegative

	out, err := services.RenderJournal(journal, layout, testMapping(), testDate)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n")
	cashCells := strings.Split(rows[0], ",")
	assert.Equal(t, "-620.00", cashCells[6])
	golfCells := strings.Split(rows[2], ",")
	assert.Equal(t, "695.65", golfCells[6])
}

func TestRenderJournal_MappingSignOverrideWins(t *testing.T) {
	journal := buildTestJournal(t)
	mapping := testMapping()
	override := domain.DebitNegative
	mapping.SignOverride = &override

	out, err := services.RenderJournal(journal, signedLayout(), mapping, testDate)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n")
	cashCells := strings.Split(rows[0], ",")
	assert.Equal(t, "-620.00", cashCells[6])
}

func TestRenderJournal_SplitColumnsWithHeader(t *testing.T) {
	journal := buildTestJournal(t)

	out, err := services.RenderJournal(journal, headeredSplitLayout(), testMapping(), testDate)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n")
	require.Len(t, rows, 6, "header plus five lines")
	assert.Equal(t, "Date;Account;Reference;Description;Debit;Credit;Tax Type;Tax Amount", rows[0])

	cashCells := strings.Split(rows[1], ";")
	assert.Equal(t, "2025-06-01", cashCells[0])
	assert.Equal(t, "8400000", cashCells[1], "slash stripped from the GL code")
	assert.Equal(t, "620.00", cashCells[4])
	assert.Equal(t, "0.00", cashCells[5])

	golfCells := strings.Split(rows[3], ";")
	assert.Equal(t, "0.00", golfCells[4])
	assert.Equal(t, "695.65", golfCells[5])
	assert.Equal(t, "104.35", golfCells[7], "split layouts keep tax amounts positive")
}

// End to end: infer a layout from an uploaded sample, then render a journal
// against it and check the output keeps the sample's shape.
func TestRenderJournal_MatchesInferredSampleShape(t *testing.T) {
	sample := []byte("GLJ|15/05/2025|14|8400000|CASH takings|CB20250515|250.00\n" +
		"GLJ|15/05/2025|14|1000000|GOLF revenue|CB20250515|-217.39\n")

	repo := new(MockLayoutRepository)
	repo.On("SaveLayout", mock.Anything, mock.AnythingOfType("domain.LayoutDescriptor")).Return(nil).Once()
	layout, err := services.NewLayoutService(repo).InferLayout(context.Background(), "upload.txt", sample, "user-1")
	require.NoError(t, err)

	out, err := services.RenderJournal(buildTestJournal(t), layout, testMapping(), testDate)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n")
	require.Len(t, rows, 5, "no header row, matching the headerless sample")
	for _, row := range rows {
		cells := strings.Split(row, "|")
		require.Len(t, cells, 7, "rendered rows keep the sample's delimiter and column count")
		// columns with no inferred role replay the sample's template values
		assert.Equal(t, "GLJ", cells[0])
		assert.Equal(t, "14", cells[2])
		assert.Equal(t, "01/06/2025", cells[1], "date in the sample's format")
	}

	cashCells := strings.Split(rows[0], "|")
	assert.Equal(t, "8400000", cashCells[3])
	assert.Equal(t, "620.00", cashCells[6])
	golfCells := strings.Split(rows[2], "|")
	assert.Equal(t, "1000000", golfCells[3])
	assert.Equal(t, "-695.65", golfCells[6], "credits negative, matching the sample's revenue row")
}

func TestRenderJournal_UnbalancedJournalRefused(t *testing.T) {
	journal := &domain.Journal{
		Lines: []domain.JournalLine{
			{Account: "8400000", Debit: d("100.00"), Credit: decimal.Zero},
		},
	}

	_, err := services.RenderJournal(journal, signedLayout(), testMapping(), testDate)

	var balanceErr *apperrors.BalanceError
	require.ErrorAs(t, err, &balanceErr)
}
