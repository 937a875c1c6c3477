package dto

import (
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// UpdateMappingRequest carries the operator's account mapping. Fields are
// pointers so a PUT can change one piece without clobbering the rest,
// matching how the original settings endpoint behaved.
type UpdateMappingRequest struct {
	VATAccount            *string           `json:"vatAccount" binding:"omitempty,glaccount"`
	DebitAccounts         map[string]string `json:"debitAccounts" binding:"omitempty,dive,keys,oneof=CASH CARD EFT ONLINE,endkeys,glaccount"`
	RevenueAccounts       map[string]string `json:"revenueAccounts" binding:"omitempty,dive,keys,oneof=GOLF CART COMPETITION OTHER,endkeys,glaccount"`
	DefaultRevenueAccount *string           `json:"defaultRevenueAccount" binding:"omitempty,glaccount"`
	TaxCode               *string           `json:"taxCode" binding:"omitempty,max=10"`
	SignOverride          *string           `json:"signOverride" binding:"omitempty,oneof=DEBIT_POSITIVE DEBIT_NEGATIVE"`
}

// MappingResponse is the stored mapping configuration.
type MappingResponse struct {
	VATAccount            string            `json:"vatAccount"`
	DebitAccounts         map[string]string `json:"debitAccounts"`
	RevenueAccounts       map[string]string `json:"revenueAccounts"`
	DefaultRevenueAccount string            `json:"defaultRevenueAccount"`
	TaxCode               string            `json:"taxCode"`
	SignOverride          *string           `json:"signOverride,omitempty"`
	LastUpdatedAt         time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy         string            `json:"lastUpdatedBy"`
}

// ToMappingResponse maps the domain configuration into its API shape.
func ToMappingResponse(m *domain.MappingConfiguration) MappingResponse {
	debit := make(map[string]string, len(m.DebitAccounts))
	for method, acct := range m.DebitAccounts {
		debit[string(method)] = acct
	}
	revenue := make(map[string]string, len(m.RevenueAccounts))
	for class, acct := range m.RevenueAccounts {
		revenue[string(class)] = acct
	}
	var sign *string
	if m.SignOverride != nil {
		s := string(*m.SignOverride)
		sign = &s
	}
	return MappingResponse{
		VATAccount:            m.VATAccount,
		DebitAccounts:         debit,
		RevenueAccounts:       revenue,
		DefaultRevenueAccount: m.DefaultRevenueAccount,
		TaxCode:               m.TaxCode,
		SignOverride:          sign,
		LastUpdatedAt:         m.LastUpdatedAt,
		LastUpdatedBy:         m.LastUpdatedBy,
	}
}
