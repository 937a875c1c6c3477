package domain

// MappingConfiguration holds the operator-maintained associations between
// this system's payment data and the external chart of accounts. Shape is
// validated on save; completeness is only checkable at export time, against
// the payment methods that actually occur on the export date.
type MappingConfiguration struct {
	// VATAccount receives the VAT-payable credit line. Required at export.
	VATAccount string `json:"vatAccount"`
	// DebitAccounts maps each payment method to the GL account debited for
	// its takings (bank, card clearing, petty cash...).
	DebitAccounts map[PaymentMethod]string `json:"debitAccounts"`
	// RevenueAccounts routes each fee classification's net revenue credit.
	// Classifications without an entry fall back to DefaultRevenueAccount.
	RevenueAccounts      map[FeeClassification]string `json:"revenueAccounts"`
	DefaultRevenueAccount string                      `json:"defaultRevenueAccount"`
	// TaxCode is the external package's code for standard-rate output VAT.
	TaxCode string `json:"taxCode"`
	// SignOverride, when set, wins over the inferred layout sign convention.
	SignOverride *SignConvention `json:"signOverride,omitempty"`
	AuditFields
}

// DebitAccountFor returns the debit account mapped to the method.
func (m *MappingConfiguration) DebitAccountFor(method PaymentMethod) (string, bool) {
	acct, ok := m.DebitAccounts[method]
	if !ok || acct == "" {
		return "", false
	}
	return acct, true
}

// RevenueAccountFor returns the revenue account for the classification,
// falling back to the default account.
func (m *MappingConfiguration) RevenueAccountFor(class FeeClassification) string {
	if acct, ok := m.RevenueAccounts[class]; ok && acct != "" {
		return acct
	}
	return m.DefaultRevenueAccount
}
