package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
)

const (
	journalSheet  = "Journal"
	paymentsSheet = "Payments"

	headerFillColor = "4472C4"
	amountNumFmt    = "#,##0.00"
)

var journalSheetHeaders = []string{"Account", "Reference", "Description", "Debit", "Credit", "Tax Code", "Tax Amount"}

var paymentSheetHeaders = []string{"Booking Ref", "Player", "Method", "Classification", "Amount", "Status"}

// RenderWorkbook builds the operator review spreadsheet: the balanced
// journal on one sheet and the payment records feeding it on another.
// This is a human-facing artifact; the importer only ever sees the
// flat-file render.
func RenderWorkbook(journal *domain.Journal, records []domain.PaymentRecord) ([]byte, error) {
	if !journal.Balanced() {
		return nil, &apperrors.BalanceError{DebitTotal: journal.DebitTotal(), CreditTotal: journal.CreditTotal()}
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", journalSheet)
	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return nil, fmt.Errorf("failed to create payments sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	numFmt := amountNumFmt
	amountStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &numFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create total style: %w", err)
	}

	if err := writeJournalSheet(f, journal, headerStyle, amountStyle, totalStyle); err != nil {
		return nil, err
	}
	if err := writePaymentsSheet(f, records, headerStyle, amountStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeJournalSheet(f *excelize.File, journal *domain.Journal, headerStyle, amountStyle, totalStyle int) error {
	for i, h := range journalSheetHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(journalSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(journalSheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	row := 1
	for _, line := range journal.Lines {
		row++
		values := []any{
			line.Account,
			line.Reference,
			line.Description,
			line.Debit.InexactFloat64(),
			line.Credit.InexactFloat64(),
			line.TaxCode,
			line.TaxAmount.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(journalSheet, cell, v); err != nil {
				return err
			}
		}
	}

	totalsRow := row + 1
	if err := f.SetCellValue(journalSheet, fmt.Sprintf("C%d", totalsRow), "TOTALS"); err != nil {
		return err
	}
	if err := f.SetCellValue(journalSheet, fmt.Sprintf("D%d", totalsRow), journal.DebitTotal().InexactFloat64()); err != nil {
		return err
	}
	if err := f.SetCellValue(journalSheet, fmt.Sprintf("E%d", totalsRow), journal.CreditTotal().InexactFloat64()); err != nil {
		return err
	}

	if row >= 2 {
		if err := f.SetCellStyle(journalSheet, "D2", fmt.Sprintf("E%d", row), amountStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(journalSheet, "G2", fmt.Sprintf("G%d", row), amountStyle); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(journalSheet, fmt.Sprintf("D%d", totalsRow), fmt.Sprintf("E%d", totalsRow), totalStyle); err != nil {
		return err
	}

	if err := f.SetColWidth(journalSheet, "A", "A", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(journalSheet, "B", "C", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(journalSheet, "D", "G", 12); err != nil {
		return err
	}
	return f.SetPanes(journalSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})
}

func writePaymentsSheet(f *excelize.File, records []domain.PaymentRecord, headerStyle, amountStyle int) error {
	for i, h := range paymentSheetHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(paymentsSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(paymentsSheet, "A1", "F1", headerStyle); err != nil {
		return err
	}

	row := 1
	for _, rec := range records {
		row++
		values := []any{
			rec.BookingRef,
			rec.PlayerName,
			string(rec.Method),
			string(rec.Classification),
			rec.Amount.InexactFloat64(),
			string(rec.Status),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(paymentsSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if row >= 2 {
		if err := f.SetCellStyle(paymentsSheet, "E2", fmt.Sprintf("E%d", row), amountStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(paymentsSheet, "A", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(paymentsSheet, "C", "F", 14); err != nil {
		return err
	}
	return f.SetPanes(paymentsSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})
}
