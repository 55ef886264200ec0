package dto

import (
	"retail-ledger/internal/models"
)

// Reporting Request DTOs

// MovementAnalyticsRequest represents the query parameters for the movement
// analytics report. Category and Kind are optional narrowing filters.
type MovementAnalyticsRequest struct {
	From     string `query:"from" validate:"required,datetime=2006-01-02"`
	To       string `query:"to" validate:"required,datetime=2006-01-02"`
	Category string `query:"category" validate:"omitempty,account_category"`
	Kind     string `query:"kind" validate:"omitempty"`
}

// Reporting Response DTOs

// BalanceTotalResponse represents the bank-wide balance total
type BalanceTotalResponse struct {
	Total string `json:"total"`
}

// ExportResponse represents the full account export
type ExportResponse struct {
	Rows  []models.ExportRow `json:"rows"`
	Total int                `json:"total"`
}

// MovementAnalyticsResponse represents the movement analytics report
type MovementAnalyticsResponse struct {
	Rows  []models.MovementAnalyticsRow `json:"rows"`
	Total int                           `json:"total"`
}

// Parameter DTOs

// UpdateParametersRequest represents a partial update of the bank parameters;
// omitted fields keep their current value
type UpdateParametersRequest struct {
	TransferFee             *string `json:"transfer_fee" validate:"omitempty"`
	TermDepositAnnualRate   *string `json:"term_deposit_annual_rate" validate:"omitempty"`
	CheckingOverdraftLimit  *string `json:"checking_overdraft_limit" validate:"omitempty"`
	CheckingMaintenanceCost *string `json:"checking_maintenance_cost" validate:"omitempty"`
}

// ParametersResponse represents the bank parameters in API responses
type ParametersResponse struct {
	Parameters *models.BankParameters `json:"parameters"`
	Message    string                 `json:"message,omitempty"`
}
