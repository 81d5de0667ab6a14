package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

// FinancialHandler handles financial report requests.
type FinancialHandler struct {
	reportService services.ReportServicer
}

// NewFinancialHandler creates a new FinancialHandler.
func NewFinancialHandler(reportService services.ReportServicer) *FinancialHandler {
	return &FinancialHandler{reportService: reportService}
}

// GenerateReportRequest represents the request payload for a financial report.
type GenerateReportRequest struct {
	Category  string    `json:"category" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// GenerateFinancialReport streams a PDF report for a category and date range.
func (h *FinancialHandler) GenerateFinancialReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	data, err := h.reportService.BuildReport(req.Category, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="financial_report.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)

	if err := report.RenderPDF(data, c.Writer); err != nil {
		// Headers are already committed; all we can do is log and abort.
		_ = c.Error(apperrors.Wrap(apperrors.ErrReportFailed, err))
		c.Abort()
	}
}
