// Package mapping converts between database models and domain types.
package mapping

import (
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	"github.com/greenlinkgolf/cashbook_app/internal/models"
)

// ToDomainPayment converts a models.PaymentRecord to domain.PaymentRecord.
func ToDomainPayment(m models.PaymentRecord) domain.PaymentRecord {
	record := domain.PaymentRecord{
		PaymentID:      m.PaymentID,
		BookingRef:     m.BookingRef,
		PlayerName:     m.PlayerName,
		Amount:         m.Amount,
		Method:         domain.PaymentMethod(m.Method),
		Classification: domain.FeeClassification(m.Classification),
		Status:         domain.PaymentStatus(m.Status),
		Exported:       m.Exported,
		ExportedAt:     m.ExportedAt,
		CreatedAt:      m.CreatedAt,
	}
	if m.BatchRef != nil {
		record.BatchRef = *m.BatchRef
	}
	return record
}

// ToDomainDayCloseEvent converts a models.DayCloseEvent to domain.DayCloseEvent.
func ToDomainDayCloseEvent(m models.DayCloseEvent) domain.DayCloseEvent {
	event := domain.DayCloseEvent{
		EventID:    m.EventID,
		CloseDate:  m.CloseDate,
		Action:     domain.DayCloseAction(m.Action),
		ActorID:    m.ActorID,
		OccurredAt: m.OccurredAt,
		AutoPush:   m.AutoPush,
	}
	if m.BatchRef != nil {
		event.BatchRef = *m.BatchRef
	}
	if m.Filename != nil {
		event.Filename = *m.Filename
	}
	return event
}

// ToModelDayCloseEvent converts a domain.DayCloseEvent to models.DayCloseEvent.
func ToModelDayCloseEvent(d domain.DayCloseEvent) models.DayCloseEvent {
	event := models.DayCloseEvent{
		EventID:    d.EventID,
		CloseDate:  d.CloseDate,
		Action:     string(d.Action),
		ActorID:    d.ActorID,
		OccurredAt: d.OccurredAt,
		AutoPush:   d.AutoPush,
	}
	if d.BatchRef != "" {
		event.BatchRef = &d.BatchRef
	}
	if d.Filename != "" {
		event.Filename = &d.Filename
	}
	return event
}
