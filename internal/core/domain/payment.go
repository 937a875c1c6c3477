package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how money was collected at check-in.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodCard   PaymentMethod = "CARD"
	MethodEFT    PaymentMethod = "EFT"
	MethodOnline PaymentMethod = "ONLINE"
)

// DebitLineOrder is the order debit lines appear in a rendered journal.
// Methods outside this list sort after it, alphabetically.
var DebitLineOrder = []PaymentMethod{MethodCash, MethodCard, MethodEFT, MethodOnline}

// IsKnown reports whether the method belongs to the closed set.
func (m PaymentMethod) IsKnown() bool {
	switch m {
	case MethodCash, MethodCard, MethodEFT, MethodOnline:
		return true
	}
	return false
}

// FeeClassification is the coarse revenue category used to route revenue
// credits to different ledger accounts.
type FeeClassification string

const (
	FeeGolf        FeeClassification = "GOLF"
	FeeCart        FeeClassification = "CART"
	FeeCompetition FeeClassification = "COMPETITION"
	FeeOther       FeeClassification = "OTHER"
)

// CreditLineOrder is the order revenue credit lines appear in a rendered journal.
var CreditLineOrder = []FeeClassification{FeeGolf, FeeCart, FeeCompetition, FeeOther}

// PaymentStatus mirrors the booking payment state maintained upstream by
// the check-in subsystem. Only PAID records are eligible for export.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentPending  PaymentStatus = "PENDING"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentRecord is one append-only ledger entry of money collected against
// a booking. CreatedAt is the moment payment was recorded, which is the
// accounting transaction date (not the tee-time date). Everything except
// Exported/BatchRef is read-only to this service.
type PaymentRecord struct {
	PaymentID      string            `json:"paymentID"`
	BookingRef     string            `json:"bookingRef"`
	PlayerName     string            `json:"playerName"`
	Amount         decimal.Decimal   `json:"amount"` // tax-inclusive, 2dp, > 0
	Method         PaymentMethod     `json:"method"`
	Classification FeeClassification `json:"classification"`
	Status         PaymentStatus     `json:"status"`
	Exported       bool              `json:"exported"`
	BatchRef       string            `json:"batchRef,omitempty"` // set with Exported, cleared on reopen
	ExportedAt     *time.Time        `json:"exportedAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}
