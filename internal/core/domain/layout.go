package domain

import "time"

// ColumnRole is the semantic role a column plays in the external
// accounting package's import layout.
type ColumnRole string

const (
	RoleDate        ColumnRole = "DATE"
	RoleAccount     ColumnRole = "ACCOUNT"
	RoleReference   ColumnRole = "REFERENCE"
	RoleDescription ColumnRole = "DESCRIPTION"
	RoleAmount      ColumnRole = "AMOUNT" // single signed amount column
	RoleDebit       ColumnRole = "DEBIT"  // separate debit column
	RoleCredit      ColumnRole = "CREDIT" // separate credit column
	RoleTaxFlag     ColumnRole = "TAX_FLAG"
	RoleTaxAmount   ColumnRole = "TAX_AMOUNT"
)

// SignConvention describes how a single signed amount column encodes
// debits versus credits.
type SignConvention string

const (
	DebitPositive SignConvention = "DEBIT_POSITIVE" // debits positive, credits negative
	DebitNegative SignConvention = "DEBIT_NEGATIVE"
)

// LayoutDescriptor is the inferred structural description of the external
// system's flat-file import format. It is created once per club by uploading
// a sample export and is immutable except by re-upload.
type LayoutDescriptor struct {
	LayoutID  string `json:"layoutID"`
	Delimiter string `json:"delimiter"` // single rune: "," ";" "|" or "\t"
	HasHeader bool   `json:"hasHeader"`
	// Columns holds header names when HasHeader, otherwise synthetic
	// positional names ("col_0"...). Roles maps a semantic role to a
	// column index into Columns; DATE and ACCOUNT are always present.
	Columns []string           `json:"columns"`
	Roles   map[ColumnRole]int `json:"roles"`
	// DateFormat is a Go reference-time layout inferred from the sample.
	DateFormat string         `json:"dateFormat"`
	Sign       SignConvention `json:"sign"`
	// AccountDigitsOnly records whether the sample renders account codes
	// as bare digits; it controls how our GL codes are formatted on output.
	AccountDigitsOnly bool `json:"accountDigitsOnly"`
	// MirrorColumns must repeat the signed amount value on every row
	// (e.g. Sage's Home Amount column in single-currency books).
	MirrorColumns []int `json:"mirrorColumns,omitempty"`
	// TemplateRow is the first sample data row; incidental constant columns
	// (batch codes, exchange rates) are copied from it verbatim.
	TemplateRow []string `json:"templateRow"`
	// SampleHead keeps the first rows of the uploaded sample for
	// re-verification when the external package changes its format.
	SampleHead     [][]string `json:"sampleHead"`
	SourceFilename string     `json:"sourceFilename"`
	UploadedBy     string     `json:"uploadedBy"`
	UploadedAt     time.Time  `json:"uploadedAt"`
}

// ColumnIndex returns the index mapped to the role and whether it exists.
func (l *LayoutDescriptor) ColumnIndex(role ColumnRole) (int, bool) {
	idx, ok := l.Roles[role]
	return idx, ok
}

// HasSplitAmounts reports whether the layout uses separate debit/credit
// columns rather than one signed amount column.
func (l *LayoutDescriptor) HasSplitAmounts() bool {
	_, hasDebit := l.Roles[RoleDebit]
	_, hasCredit := l.Roles[RoleCredit]
	return hasDebit && hasCredit
}
