package handlers

import (
	"net/http"
	"strings"
	"time"

	"retail-ledger/internal/dto"
	apierrors "retail-ledger/internal/errors"
	"retail-ledger/internal/models"
	"retail-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportingHandler handles reporting and analytics HTTP requests
type ReportingHandler struct {
	reportingService services.ReportingServiceInterface
}

// NewReportingHandler creates a new reporting handler
func NewReportingHandler(reportingService services.ReportingServiceInterface) *ReportingHandler {
	return &ReportingHandler{reportingService: reportingService}
}

// GetBalanceTotal returns the bank-wide balance total across every account
func (h *ReportingHandler) GetBalanceTotal(c echo.Context) error {
	total, err := h.reportingService.GlobalBalanceTotal()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BalanceTotalResponse{Total: total.StringFixed(2)})
}

// GetFullExport returns one row per account with the owner's identity attached
func (h *ReportingHandler) GetFullExport(c echo.Context) error {
	rows, err := h.reportingService.FullExport()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ExportResponse{
		Rows:  rows,
		Total: len(rows),
	})
}

// GetMovementAnalytics returns movements in a date range joined with account
// and owner data, optionally narrowed by account category and movement kind
func (h *ReportingHandler) GetMovementAnalytics(c echo.Context) error {
	var req dto.MovementAnalyticsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("from: must be YYYY-MM-DD"))
	}

	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("to: must be YYYY-MM-DD"))
	}

	// Make the range inclusive of the whole end day
	to = to.Add(24*time.Hour - time.Nanosecond)

	if to.Before(from) {
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("to: must not be before from"))
	}

	filters := models.MovementFilters{
		From:     from,
		To:       to,
		Category: strings.ToLower(req.Category),
		Kind:     strings.ToLower(req.Kind),
	}

	rows, err := h.reportingService.MovementAnalytics(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MovementAnalyticsResponse{
		Rows:  rows,
		Total: len(rows),
	})
}
