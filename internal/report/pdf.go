// Package report renders the financial report PDF.
package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"fintrack/internal/services"
)

// RenderPDF writes the financial report for data to w as a PDF document.
func RenderPDF(data *services.ReportData, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Financial Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Date range and category
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Date Range: %s to %s",
		data.StartDate.Format("2006-01-02"), data.EndDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Category: %s", data.Category), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Expenses overview
	sectionHeader(pdf, "Expenses Overview")
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Expenses: $%s", data.TotalExpenses.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Number of Transactions: %d", data.ExpenseCount), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Budget overview
	sectionHeader(pdf, "Budget Overview")
	pdf.CellFormat(0, 7, fmt.Sprintf("Budget Amount: $%s", data.BudgetAmount.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Budget Variance: $%s", data.BudgetVariance.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Suggestions
	sectionHeader(pdf, "Suggestions")
	pdf.MultiCell(0, 7, fmt.Sprintf("1. %s", data.Suggestion), "", "L", false)

	// Footer
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated on "+data.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

func sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
}
