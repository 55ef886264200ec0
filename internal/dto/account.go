package dto

import (
	"retail-ledger/internal/models"
)

// Account Request DTOs

// OpenAccountRequest represents the request payload for opening an account
type OpenAccountRequest struct {
	ClientID       string `json:"client_id" validate:"required,uuid"`
	Kind           string `json:"kind" validate:"required,account_kind"`
	Category       string `json:"category" validate:"required,account_category"`
	OpeningBalance string `json:"opening_balance" validate:"omitempty"`
}

// CashOperationRequest represents the request payload for a deposit or withdrawal
type CashOperationRequest struct {
	Amount      string `json:"amount" validate:"required,money_amount"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// TransferRequest represents the request payload for transferring funds
type TransferRequest struct {
	ToAccountNumber string `json:"to_account_number" validate:"required,account_number"`
	Amount          string `json:"amount" validate:"required,money_amount"`
}

// ConstituteTermDepositRequest represents the request payload for opening a
// term deposit. AnnualRate is optional; the bank-wide default rate applies
// when it is omitted.
type ConstituteTermDepositRequest struct {
	Principal  string `json:"principal" validate:"required,money_amount"`
	TermDays   int    `json:"term_days" validate:"required,min=1"`
	AnnualRate string `json:"annual_rate" validate:"omitempty"`
}

// Account Response DTOs

// OpenAccountResponse represents the response after opening an account
type OpenAccountResponse struct {
	Account *models.Account `json:"account"`
	Message string          `json:"message"`
}

// AccountResponse represents a single account in API responses
type AccountResponse struct {
	*models.Account
}

// AccountListResponse represents a list of accounts
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int              `json:"total"`
}

// MovementResponse represents the response after a cash operation
type MovementResponse struct {
	Movement *models.Movement `json:"movement"`
	Message  string           `json:"message"`
}

// MovementListResponse represents a paginated movement history
type MovementListResponse struct {
	Movements []models.Movement `json:"movements"`
	Total     int64             `json:"total"`
	Offset    int               `json:"offset"`
	Limit     int               `json:"limit"`
}

// TransferResponse represents the response after a successful transfer
type TransferResponse struct {
	Message  string           `json:"message"`
	Sent     *models.Movement `json:"sent"`
	Received *models.Movement `json:"received"`
}

// TermDepositResponse represents a term deposit in API responses
type TermDepositResponse struct {
	Deposit *models.TermDeposit `json:"deposit"`
	Message string              `json:"message,omitempty"`
}

// TermDepositListResponse represents a list of term deposits
type TermDepositListResponse struct {
	Deposits []models.TermDeposit `json:"deposits"`
	Total    int                  `json:"total"`
}

// RedeemTermDepositResponse represents the response after redeeming a term deposit
type RedeemTermDepositResponse struct {
	Deposit  *models.TermDeposit `json:"deposit"`
	Movement *models.Movement    `json:"movement"`
	Message  string              `json:"message"`
}
