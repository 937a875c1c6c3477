package services

import (
	"regexp"
	"strings"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Heuristic predicates for layout inference. Each is independently
// testable so new sample shapes can be supported without rewriting the
// whole inference pass.

var (
	// day/month/year with 1-2 digit day/month, 2-4 digit year, common separators
	dateCellRe = regexp.MustCompile(`^\d{1,4}[/.\-]\d{1,2}[/.\-]\d{1,4}$`)
	// account codes rendered as bare digits
	accountCellRe = regexp.MustCompile(`^[0-9]{5,10}$`)
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// isDateCell reports whether the cell looks like a calendar date.
func isDateCell(cell string) bool {
	cell = strings.TrimSpace(cell)
	if !dateCellRe.MatchString(cell) {
		return false
	}
	// at least one component must be a plausible year
	parts := regexp.MustCompile(`[/.\-]`).Split(cell, -1)
	if len(parts) != 3 {
		return false
	}
	return len(parts[0]) >= 2 || len(parts[2]) >= 2
}

// isAccountCell reports whether the cell looks like a digits-only GL code.
func isAccountCell(cell string) bool {
	return accountCellRe.MatchString(strings.TrimSpace(cell))
}

// isAmountCell reports whether the cell carries a decimal point or minus
// sign and parses as a fixed-point number.
func isAmountCell(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	if !strings.ContainsAny(cell, ".-") {
		return false
	}
	_, err := decimal.NewFromString(cell)
	return err == nil
}

// parseAmountCell parses a fixed-point cell, tolerating surrounding space.
func parseAmountCell(cell string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(cell))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// normalizeHeader lowercases a header cell and strips everything that is
// not a letter or digit, so "Tax Amount", "tax_amount" and "TaxAmount"
// all normalize to "taxamount".
func normalizeHeader(cell string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(cell), "")
}

// roleKeywords maps each semantic role to its header keyword sets. A
// header matches a set when its normalized text contains every keyword.
// Order matters: more specific roles are tried first so "tax amount" does
// not get claimed by AMOUNT.
var roleKeywords = []struct {
	role domain.ColumnRole
	sets [][]string
}{
	{domain.RoleTaxAmount, [][]string{{"tax", "amount"}}},
	{domain.RoleTaxFlag, [][]string{{"tax", "flag"}, {"tax", "type"}}},
	{domain.RoleDate, [][]string{{"date"}}},
	{domain.RoleReference, [][]string{{"reference"}, {"ref"}}},
	{domain.RoleDescription, [][]string{{"description"}, {"desc"}}},
	{domain.RoleAccount, [][]string{{"account"}, {"gl"}}},
	{domain.RoleDebit, [][]string{{"debit"}}},
	{domain.RoleCredit, [][]string{{"credit"}}},
	{domain.RoleAmount, [][]string{{"amount"}, {"value"}}},
}

// headerTokens are the tokens whose presence anywhere in the first row
// marks it as a header row.
var headerTokens = []string{"date", "ref", "description", "desc", "account", "debit", "credit", "amount", "tax"}

// rowLooksLikeHeader reports whether any cell of the row contains a
// header-like token (case- and punctuation-insensitive).
func rowLooksLikeHeader(row []string) bool {
	for _, cell := range row {
		norm := normalizeHeader(cell)
		if norm == "" {
			continue
		}
		for _, token := range headerTokens {
			if strings.Contains(norm, token) {
				return true
			}
		}
	}
	return false
}

// rowHasDateShapedCell reports whether any cell of the row parses as a date.
func rowHasDateShapedCell(row []string) bool {
	for _, cell := range row {
		if isDateCell(cell) {
			return true
		}
	}
	return false
}

// rowHasAmountShapedCell reports whether any cell of the row parses as an amount.
func rowHasAmountShapedCell(row []string) bool {
	for _, cell := range row {
		if isAmountCell(cell) {
			return true
		}
	}
	return false
}

// matchHeaderRoles assigns roles to header columns by fuzzy containment,
// preferring exact normalized matches over substring matches.
func matchHeaderRoles(headers []string) map[domain.ColumnRole]int {
	roles := make(map[domain.ColumnRole]int)
	claimed := make(map[int]bool)

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	assign := func(role domain.ColumnRole, idx int) {
		roles[role] = idx
		claimed[idx] = true
	}

	// pass 1: exact normalized matches ("debit" == "debit", "taxamount" == "tax"+"amount")
	for _, rk := range roleKeywords {
		if _, done := roles[rk.role]; done {
			continue
		}
		for _, set := range rk.sets {
			joined := strings.Join(set, "")
			for idx, norm := range normalized {
				if claimed[idx] || norm == "" {
					continue
				}
				if norm == joined {
					assign(rk.role, idx)
					break
				}
			}
			if _, done := roles[rk.role]; done {
				break
			}
		}
	}

	// pass 2: containment matches (every keyword of a set appears in the header)
	for _, rk := range roleKeywords {
		if _, done := roles[rk.role]; done {
			continue
		}
		for _, set := range rk.sets {
			for idx, norm := range normalized {
				if claimed[idx] || norm == "" {
					continue
				}
				all := true
				for _, kw := range set {
					if !strings.Contains(norm, kw) {
						all = false
						break
					}
				}
				if all {
					assign(rk.role, idx)
					break
				}
			}
			if _, done := roles[rk.role]; done {
				break
			}
		}
	}

	return roles
}

// delimiterCandidates in sniffing order.
var delimiterCandidates = []string{",", ";", "|", "\t"}

// sniffDelimiter picks the delimiter that splits the first rows into the
// most consistent multi-field shape.
func sniffDelimiter(lines []string) (string, bool) {
	sample := lines
	if len(sample) > 10 {
		sample = sample[:10]
	}

	best := ""
	bestFields := 1
	for _, cand := range delimiterCandidates {
		counts := make(map[int]int)
		for _, line := range sample {
			counts[len(strings.Split(line, cand))]++
		}
		// a delimiter is plausible only when every sampled row splits into
		// the same number of fields, and more than one
		if len(counts) != 1 {
			continue
		}
		for fields := range counts {
			if fields > bestFields {
				bestFields = fields
				best = cand
			}
		}
	}
	if best != "" {
		return best, true
	}

	// no fully consistent candidate; fall back to the one with the widest
	// dominant field count
	bestScore := 1
	for _, cand := range delimiterCandidates {
		counts := make(map[int]int)
		for _, line := range sample {
			counts[len(strings.Split(line, cand))]++
		}
		for fields, occurrences := range counts {
			if fields > 1 && fields*occurrences > bestScore {
				bestScore = fields * occurrences
				best = cand
			}
		}
	}
	return best, best != ""
}

// dateFormatCandidates is the fixed ordered list tried against the
// detected date cell; the first structural match wins.
var dateFormatCandidates = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`), "2006-01-02"},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), "02/01/2006"},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`), "02/01/06"},
	{regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`), "2006/01/02"},
}

// inferDateFormat returns the Go layout for a date cell.
func inferDateFormat(cell string) (string, bool) {
	cell = strings.TrimSpace(cell)
	for _, cand := range dateFormatCandidates {
		if cand.pattern.MatchString(cell) {
			return cand.layout, true
		}
	}
	return "", false
}
