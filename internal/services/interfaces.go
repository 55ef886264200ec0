package services

import (
	"time"

	"retail-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientServiceInterface defines client registry operations
type ClientServiceInterface interface {
	// CreateOrFetch registers a client, or returns the existing record when
	// the national ID is already taken. The bool reports whether a new
	// client was created.
	CreateOrFetch(firstName, lastName, nationalID, email string) (*models.Client, bool, error)
	GetByID(id uuid.UUID) (*models.Client, error)
	Search(term string) ([]models.Client, error)
	Deactivate(id uuid.UUID) error
	Reactivate(id uuid.UUID) error
}

// LedgerServiceInterface defines the account ledger operations
type LedgerServiceInterface interface {
	OpenAccount(clientID uuid.UUID, kind, category string, openingBalance decimal.Decimal) (*models.Account, error)
	GetAccountByNumber(accountNumber string) (*models.Account, error)
	GetClientAccounts(clientID uuid.UUID) ([]models.Account, error)
	SearchAccounts(term string) ([]models.Account, error)
	GetMovements(accountNumber string, offset, limit int) ([]models.Movement, int64, error)

	Deposit(accountNumber string, amount decimal.Decimal, description string) (*models.Movement, error)
	Withdraw(accountNumber string, amount decimal.Decimal, description string) (*models.Movement, error)
	// Transfer debits amount plus the configured transfer fee from the
	// source and credits amount to the destination.
	Transfer(fromNumber, toNumber string, amount decimal.Decimal) (*models.Movement, *models.Movement, error)
	ApplyMaintenanceFee(accountNumber string) (*models.Movement, error)
}

// TermDepositServiceInterface defines the term deposit lifecycle
type TermDepositServiceInterface interface {
	// Constitute opens a term deposit against the account's real balance.
	// A nil annualRate falls back to the bank-wide default rate.
	Constitute(accountNumber string, principal decimal.Decimal, termDays int, annualRate *decimal.Decimal) (*models.TermDeposit, error)
	Redeem(depositID uuid.UUID) (*models.TermDeposit, *models.Movement, error)
	ListByAccount(accountNumber string) ([]models.TermDeposit, error)
}

// ReportingServiceInterface defines the read-side aggregation queries
type ReportingServiceInterface interface {
	GlobalBalanceTotal() (decimal.Decimal, error)
	FullExport() ([]models.ExportRow, error)
	MovementAnalytics(filters models.MovementFilters) ([]models.MovementAnalyticsRow, error)
}

// ParameterUpdate carries a partial update of the bank parameters; nil fields
// are left unchanged
type ParameterUpdate struct {
	TransferFee             *decimal.Decimal
	TermDepositAnnualRate   *decimal.Decimal
	CheckingOverdraftLimit  *decimal.Decimal
	CheckingMaintenanceCost *decimal.Decimal
}

// ParameterServiceInterface defines configuration access
type ParameterServiceInterface interface {
	Get() (*models.BankParameters, error)
	Update(update ParameterUpdate) (*models.BankParameters, error)
}

// MetricsRecorderInterface records operational metrics
type MetricsRecorderInterface interface {
	RecordOperation(operation, status string)
	ObserveOperationDuration(operation string, duration time.Duration)
	RecordTransferAmount(amount float64)
	RecordAccountOpened(kind string)
}
