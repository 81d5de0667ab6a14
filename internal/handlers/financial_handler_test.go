package handlers

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

type mockReportService struct {
	buildReportFn func(category string, start, end time.Time) (*services.ReportData, error)
}

func (m *mockReportService) BuildReport(category string, start, end time.Time) (*services.ReportData, error) {
	if m.buildReportFn != nil {
		return m.buildReportFn(category, start, end)
	}
	return &services.ReportData{}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupFinancialRouter(handler *FinancialHandler) *gin.Engine {
	r := gin.New()
	r.POST("/financial/generate-financial-report", handler.GenerateFinancialReport)
	return r
}

func TestFinancialHandler_GenerateFinancialReport(t *testing.T) {
	t.Run("streams a PDF attachment", func(t *testing.T) {
		svc := &mockReportService{
			buildReportFn: func(category string, start, end time.Time) (*services.ReportData, error) {
				return &services.ReportData{
					Category:       category,
					StartDate:      start,
					EndDate:        end,
					TotalExpenses:  decimal.RequireFromString("125"),
					ExpenseCount:   2,
					BudgetAmount:   decimal.RequireFromString("100"),
					BudgetVariance: decimal.RequireFromString("25"),
					Suggestion:     "You exceeded your budget by $25.00.",
					GeneratedAt:    time.Now(),
				}, nil
			},
		}
		handler := NewFinancialHandler(svc)
		r := setupFinancialRouter(handler)

		rec := doRequest(r, "POST", "/financial/generate-financial-report",
			`{"category":"food","startDate":"2026-01-01T00:00:00Z","endDate":"2026-03-31T00:00:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
			t.Errorf("expected application/pdf, got %s", got)
		}
		if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="financial_report.pdf"` {
			t.Errorf("unexpected content disposition: %s", got)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
			t.Error("response body is not a PDF document")
		}
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		handler := NewFinancialHandler(&mockReportService{})
		r := setupFinancialRouter(handler)

		rec := doRequest(r, "POST", "/financial/generate-financial-report", `{"category":"food"}`)
		assertFailureEnvelope(t, rec, http.StatusBadRequest)
	})

	t.Run("propagates build failures", func(t *testing.T) {
		svc := &mockReportService{
			buildReportFn: func(string, time.Time, time.Time) (*services.ReportData, error) {
				return nil, apperrors.ErrReportFailed
			},
		}
		handler := NewFinancialHandler(svc)
		r := setupFinancialRouter(handler)

		rec := doRequest(r, "POST", "/financial/generate-financial-report",
			`{"category":"food","startDate":"2026-01-01T00:00:00Z","endDate":"2026-03-31T00:00:00Z"}`)
		assertFailureEnvelope(t, rec, http.StatusInternalServerError)
	})
}
