package dto

// ExportRequest asks for one payment date's journal to be rendered and
// staged. Force re-runs a date whose records are already flagged exported.
type ExportRequest struct {
	Date  string `json:"date" binding:"required,datetime=2006-01-02"`
	Force bool   `json:"force"`
}

// CloseDayRequest marks a date's takings as reconciled. AutoPush records
// the operator's intent to export immediately after closing.
type CloseDayRequest struct {
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	AutoPush bool   `json:"autoPush"`
}

// ReopenDayRequest reverts a close so late corrections can be captured.
type ReopenDayRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}
