package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portsrepo "github.com/greenlinkgolf/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/middleware"
)

var (
	ErrEmptySample      = errors.New("sample file is empty")
	ErrNoDelimiter      = errors.New("could not determine a delimiter")
	ErrNoLayoutMatch    = errors.New("could not locate required layout roles")
	ErrNoDateFormat     = errors.New("could not infer a date format from the sample")
)

// sampleHeadRows is how many parsed rows of the uploaded sample are kept
// alongside the descriptor for later re-verification.
const sampleHeadRows = 10

// fallbackFieldCount is the minimum width for the documented positional
// fallback: batch, date, journal, account, description, reference, amount.
const fallbackFieldCount = 7

// layoutService infers and persists the external package's import layout.
type layoutService struct {
	layoutRepo portsrepo.LayoutRepositoryFacade
}

// NewLayoutService creates a new LayoutService.
func NewLayoutService(layoutRepo portsrepo.LayoutRepositoryFacade) portssvc.LayoutSvcFacade {
	return &layoutService{layoutRepo: layoutRepo}
}

var _ portssvc.LayoutSvcFacade = (*layoutService)(nil)

// InferLayout implements portssvc.LayoutSvcFacade.
func (s *layoutService) InferLayout(ctx context.Context, filename string, sample []byte, uploaderID string) (*domain.LayoutDescriptor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	desc, err := inferLayoutDescriptor(sample)
	if err != nil {
		logger.Warn("Layout inference rejected sample",
			slog.String("filename", filename), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	desc.LayoutID = uuid.NewString()
	desc.SourceFilename = filename
	desc.UploadedBy = uploaderID
	desc.UploadedAt = time.Now().UTC()

	if err := s.layoutRepo.SaveLayout(ctx, *desc); err != nil {
		logger.Error("Failed to persist layout descriptor", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Layout descriptor inferred and saved",
		slog.String("layout_id", desc.LayoutID),
		slog.String("delimiter", desc.Delimiter),
		slog.Bool("has_header", desc.HasHeader),
		slog.String("date_format", desc.DateFormat),
	)
	return desc, nil
}

// GetLayout implements portssvc.LayoutSvcFacade.
func (s *layoutService) GetLayout(ctx context.Context) (*domain.LayoutDescriptor, error) {
	return s.layoutRepo.GetLayout(ctx)
}

// inferLayoutDescriptor is the pure inference pass: raw sample bytes in,
// descriptor or a diagnostic error out.
func inferLayoutDescriptor(sample []byte) (*domain.LayoutDescriptor, error) {
	lines := splitSampleLines(sample)
	if len(lines) == 0 {
		return nil, ErrEmptySample
	}

	delimiter, ok := sniffDelimiter(lines)
	if !ok {
		return nil, ErrNoDelimiter
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, delimiter)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, fields)
	}

	// Naive header sniff: a first row carrying no date- or amount-shaped
	// cell reads as a header row.
	hasHeader := !rowHasDateShapedCell(rows[0]) && !rowHasAmountShapedCell(rows[0])
	// Override: legacy export samples frequently have no header row, and a
	// first row with no header-like token but a date-shaped cell is data,
	// whatever the naive sniff said.
	if !rowLooksLikeHeader(rows[0]) && rowHasDateShapedCell(rows[0]) {
		hasHeader = false
	}

	desc := &domain.LayoutDescriptor{
		Delimiter: delimiter,
		HasHeader: hasHeader,
	}

	var template []string
	if hasHeader {
		if len(rows) < 2 {
			return nil, fmt.Errorf("%w: header row but no data rows", ErrNoLayoutMatch)
		}
		desc.Columns = rows[0]
		desc.Roles = matchHeaderRoles(rows[0])
		template = rows[1]
	} else {
		template = rows[0]
		desc.Columns = syntheticColumnNames(len(template))
		desc.Roles = detectPositionalRoles(template)
	}
	desc.TemplateRow = template

	if missing := missingRequiredRoles(desc.Roles, template); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrNoLayoutMatch, strings.Join(missing, ", "))
	}

	dateIdx := desc.Roles[domain.RoleDate]
	if dateIdx >= len(template) {
		return nil, fmt.Errorf("%w: date column outside data rows", ErrNoLayoutMatch)
	}
	format, ok := inferDateFormat(template[dateIdx])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDateFormat, template[dateIdx])
	}
	desc.DateFormat = format

	desc.Sign = inferSignConvention(desc.Roles, rows, hasHeader)
	if acctIdx, ok := desc.Roles[domain.RoleAccount]; ok && acctIdx < len(template) {
		desc.AccountDigitsOnly = isAccountCell(template[acctIdx])
	}
	desc.MirrorColumns = detectMirrorColumns(desc.Roles, template)

	head := rows
	if len(head) > sampleHeadRows {
		head = head[:sampleHeadRows]
	}
	desc.SampleHead = head

	return desc, nil
}

// splitSampleLines decodes the sample, strips a UTF-8 BOM and drops blank lines.
func splitSampleLines(sample []byte) []string {
	sample = bytes.TrimPrefix(sample, []byte{0xEF, 0xBB, 0xBF})
	raw := strings.Split(strings.ReplaceAll(string(sample), "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func syntheticColumnNames(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("col_%d", i)
	}
	return cols
}

// detectPositionalRoles locates roles in a headerless template row using
// the cell-shape predicates, falling back to the commonly observed
// 7-column shape (batch, date, journal, account, description, reference,
// amount) when detection is inconclusive on a wide enough row.
func detectPositionalRoles(template []string) map[domain.ColumnRole]int {
	roles := make(map[domain.ColumnRole]int)

	for idx, cell := range template {
		if _, ok := roles[domain.RoleDate]; !ok && isDateCell(cell) {
			roles[domain.RoleDate] = idx
			continue
		}
		if _, ok := roles[domain.RoleAccount]; !ok && isAccountCell(cell) {
			roles[domain.RoleAccount] = idx
			continue
		}
		if _, ok := roles[domain.RoleAmount]; !ok && isAmountCell(cell) {
			roles[domain.RoleAmount] = idx
		}
	}

	// a tax flag sits immediately after the amount when its value is
	// exactly "0" or "1", with a tax amount right behind it
	if amountIdx, ok := roles[domain.RoleAmount]; ok {
		flagIdx := amountIdx + 1
		if flagIdx < len(template) && (template[flagIdx] == "0" || template[flagIdx] == "1") {
			roles[domain.RoleTaxFlag] = flagIdx
			taxAmountIdx := flagIdx + 1
			if taxAmountIdx < len(template) {
				if _, ok := parseAmountCell(template[taxAmountIdx]); ok {
					roles[domain.RoleTaxAmount] = taxAmountIdx
				}
			}
		}
	}

	_, hasDate := roles[domain.RoleDate]
	_, hasAccount := roles[domain.RoleAccount]
	if (!hasDate || !hasAccount) && len(template) >= fallbackFieldCount {
		roles = map[domain.ColumnRole]int{
			domain.RoleDate:        1,
			domain.RoleAccount:     3,
			domain.RoleDescription: 4,
			domain.RoleReference:   5,
			domain.RoleAmount:      6,
		}
	}

	return roles
}

// missingRequiredRoles names the roles a usable layout cannot do without.
func missingRequiredRoles(roles map[domain.ColumnRole]int, template []string) []string {
	var missing []string
	if _, ok := roles[domain.RoleDate]; !ok {
		missing = append(missing, "date column")
	}
	if _, ok := roles[domain.RoleAccount]; !ok {
		missing = append(missing, "account column")
	}
	_, hasAmount := roles[domain.RoleAmount]
	_, hasDebit := roles[domain.RoleDebit]
	_, hasCredit := roles[domain.RoleCredit]
	if !hasAmount && !(hasDebit && hasCredit) {
		missing = append(missing, "amount (or debit/credit) column")
	}
	if len(template) < fallbackFieldCount && len(missing) > 0 {
		missing = append(missing, fmt.Sprintf("row has only %d fields", len(template)))
	}
	return missing
}

// inferSignConvention inspects sample rows where the tax flag is set: those
// are revenue credit lines, so a negative amount there means credits are
// negative and debits positive.
func inferSignConvention(roles map[domain.ColumnRole]int, rows [][]string, hasHeader bool) domain.SignConvention {
	flagIdx, hasFlag := roles[domain.RoleTaxFlag]
	amountIdx, hasAmount := roles[domain.RoleAmount]
	if !hasFlag || !hasAmount {
		return domain.DebitPositive
	}

	data := rows
	if hasHeader {
		data = rows[1:]
	}
	for _, row := range data {
		if flagIdx >= len(row) || amountIdx >= len(row) {
			continue
		}
		if row[flagIdx] != "1" {
			continue
		}
		if amount, ok := parseAmountCell(row[amountIdx]); ok {
			if amount.IsNegative() {
				return domain.DebitPositive
			}
			return domain.DebitNegative
		}
	}
	return domain.DebitPositive
}

// detectMirrorColumns finds template columns that repeat the amount value
// verbatim (e.g. a Home Amount column in a single-currency book); the
// renderer must keep them in lockstep with the signed amount.
func detectMirrorColumns(roles map[domain.ColumnRole]int, template []string) []int {
	amountIdx, ok := roles[domain.RoleAmount]
	if !ok || amountIdx >= len(template) {
		return nil
	}
	amountVal, ok := parseAmountCell(template[amountIdx])
	if !ok {
		return nil
	}

	claimed := make(map[int]bool, len(roles))
	for _, idx := range roles {
		claimed[idx] = true
	}

	var mirrors []int
	for idx, cell := range template {
		if claimed[idx] {
			continue
		}
		if val, ok := parseAmountCell(cell); ok && strings.Contains(cell, ".") && val.Equal(amountVal) {
			mirrors = append(mirrors, idx)
		}
	}
	return mirrors
}
