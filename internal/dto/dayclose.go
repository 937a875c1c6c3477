package dto

import (
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// DayCloseResponse is the derived close state for one date.
type DayCloseResponse struct {
	Date           string                  `json:"date"`
	Status         string                  `json:"status"` // none|closed|reopened
	ClosedBy       string                  `json:"closedBy,omitempty"`
	ClosedAt       *time.Time              `json:"closedAt,omitempty"`
	ReopenedBy     string                  `json:"reopenedBy,omitempty"`
	ReopenedAt     *time.Time              `json:"reopenedAt,omitempty"`
	ExportBatchRef string                  `json:"exportBatchRef,omitempty"`
	ExportFilename string                  `json:"exportFilename,omitempty"`
	AutoPush       bool                    `json:"autoPush"`
	Events         []DayCloseEventResponse `json:"events,omitempty"`
}

// DayCloseEventResponse is one row of a date's close/reopen/export history.
type DayCloseEventResponse struct {
	Action     string    `json:"action"`
	ActorID    string    `json:"actorID"`
	OccurredAt time.Time `json:"occurredAt"`
	BatchRef   string    `json:"batchRef,omitempty"`
	Filename   string    `json:"filename,omitempty"`
}

// ToDayCloseResponse maps the derived view into its API shape.
func ToDayCloseResponse(v *domain.DayCloseView) DayCloseResponse {
	resp := DayCloseResponse{
		Date:           v.Date.Format("2006-01-02"),
		Status:         string(v.Status),
		ClosedBy:       v.ClosedBy,
		ClosedAt:       v.ClosedAt,
		ReopenedBy:     v.ReopenedBy,
		ReopenedAt:     v.ReopenedAt,
		ExportBatchRef: v.ExportBatchRef,
		ExportFilename: v.ExportFilename,
		AutoPush:       v.AutoPush,
	}
	for _, ev := range v.Events {
		resp.Events = append(resp.Events, DayCloseEventResponse{
			Action:     string(ev.Action),
			ActorID:    ev.ActorID,
			OccurredAt: ev.OccurredAt,
			BatchRef:   ev.BatchRef,
			Filename:   ev.Filename,
		})
	}
	return resp
}
