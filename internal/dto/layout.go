package dto

import (
	"time"

	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

// LayoutResponse is the inferred descriptor returned for operator review
// after a sample upload.
type LayoutResponse struct {
	LayoutID          string                    `json:"layoutID"`
	Delimiter         string                    `json:"delimiter"`
	HasHeader         bool                      `json:"hasHeader"`
	Columns           []string                  `json:"columns"`
	Roles             map[domain.ColumnRole]int `json:"roles"`
	DateFormat        string                    `json:"dateFormat"`
	Sign              domain.SignConvention     `json:"sign"`
	AccountDigitsOnly bool                      `json:"accountDigitsOnly"`
	MirrorColumns     []int                     `json:"mirrorColumns,omitempty"`
	TemplateRow       []string                  `json:"templateRow"`
	SourceFilename    string                    `json:"sourceFilename"`
	UploadedBy        string                    `json:"uploadedBy"`
	UploadedAt        time.Time                 `json:"uploadedAt"`
}

// ToLayoutResponse maps the domain descriptor into its API shape.
func ToLayoutResponse(l *domain.LayoutDescriptor) LayoutResponse {
	return LayoutResponse{
		LayoutID:          l.LayoutID,
		Delimiter:         l.Delimiter,
		HasHeader:         l.HasHeader,
		Columns:           l.Columns,
		Roles:             l.Roles,
		DateFormat:        l.DateFormat,
		Sign:              l.Sign,
		AccountDigitsOnly: l.AccountDigitsOnly,
		MirrorColumns:     l.MirrorColumns,
		TemplateRow:       l.TemplateRow,
		SourceFilename:    l.SourceFilename,
		UploadedBy:        l.UploadedBy,
		UploadedAt:        l.UploadedAt,
	}
}
