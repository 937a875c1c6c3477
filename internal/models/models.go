package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is the database row representation of a payment ledger entry.
type PaymentRecord struct {
	PaymentID      string          `db:"payment_id"`
	BookingRef     string          `db:"booking_ref"`
	PlayerName     string          `db:"player_name"`
	Amount         decimal.Decimal `db:"amount"`
	Method         string          `db:"method"`
	Classification string          `db:"classification"`
	Status         string          `db:"status"`
	Exported       bool            `db:"exported"`
	BatchRef       *string         `db:"batch_ref"`
	ExportedAt     *time.Time      `db:"exported_at"`
	CreatedAt      time.Time       `db:"created_at"`
}

// DayCloseEvent is the database row representation of one close-log entry.
type DayCloseEvent struct {
	EventID    string    `db:"event_id"`
	CloseDate  time.Time `db:"close_date"`
	Action     string    `db:"action"`
	ActorID    string    `db:"actor_id"`
	OccurredAt time.Time `db:"occurred_at"`
	BatchRef   *string   `db:"batch_ref"`
	Filename   *string   `db:"filename"`
	AutoPush   bool      `db:"auto_push"`
}
