package domain

import "time"

// DayCloseStatus is the derived state of one calendar date's accounting.
type DayCloseStatus string

const (
	DayCloseNone     DayCloseStatus = "none"
	DayCloseClosed   DayCloseStatus = "closed"
	DayCloseReopened DayCloseStatus = "reopened"
)

// DayCloseAction names one event in a date's close history.
type DayCloseAction string

const (
	ActionClosed   DayCloseAction = "closed"
	ActionReopened DayCloseAction = "reopened"
	ActionExported DayCloseAction = "exported"
)

// DayCloseEvent is one append-only entry in a date's close/reopen/export
// history. Current status is derived from the log, so repeated
// close/reopen cycles keep their full audit trail.
type DayCloseEvent struct {
	EventID    string         `json:"eventID"`
	CloseDate  time.Time      `json:"closeDate"` // calendar date, midnight UTC
	Action     DayCloseAction `json:"action"`
	ActorID    string         `json:"actorID"`
	OccurredAt time.Time      `json:"occurredAt"`
	BatchRef   string         `json:"batchRef,omitempty"` // exported events
	Filename   string         `json:"filename,omitempty"` // exported events
	AutoPush   bool           `json:"autoPush"`
}

// DayCloseView is the current state of a date, derived from its event log.
type DayCloseView struct {
	Date           time.Time       `json:"date"`
	Status         DayCloseStatus  `json:"status"`
	ClosedBy       string          `json:"closedBy,omitempty"`
	ClosedAt       *time.Time      `json:"closedAt,omitempty"`
	ReopenedBy     string          `json:"reopenedBy,omitempty"`
	ReopenedAt     *time.Time      `json:"reopenedAt,omitempty"`
	ExportBatchRef string          `json:"exportBatchRef,omitempty"`
	ExportFilename string          `json:"exportFilename,omitempty"`
	AutoPush       bool            `json:"autoPush"`
	Events         []DayCloseEvent `json:"events"`
}

// DeriveDayClose folds an event log (oldest first) into the current view.
func DeriveDayClose(date time.Time, events []DayCloseEvent) DayCloseView {
	view := DayCloseView{Date: date, Status: DayCloseNone, Events: events}
	for _, ev := range events {
		switch ev.Action {
		case ActionClosed:
			at := ev.OccurredAt
			view.Status = DayCloseClosed
			view.ClosedBy = ev.ActorID
			view.ClosedAt = &at
			view.AutoPush = ev.AutoPush
		case ActionReopened:
			at := ev.OccurredAt
			view.Status = DayCloseReopened
			view.ReopenedBy = ev.ActorID
			view.ReopenedAt = &at
		case ActionExported:
			view.ExportBatchRef = ev.BatchRef
			view.ExportFilename = ev.Filename
		}
	}
	return view
}
