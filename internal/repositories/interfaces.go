package repositories

import (
	"time"

	"retail-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientRepositoryInterface defines the contract for client repository operations
type ClientRepositoryInterface interface {
	Create(client *models.Client) error
	GetByID(id uuid.UUID) (*models.Client, error)
	GetByNationalID(nationalID string) (*models.Client, error)
	Update(client *models.Client) error
	Search(term string) ([]models.Client, error)
	Deactivate(id uuid.UUID) error
	// Reactivate flips the client active and zeroes the balance of every
	// account the client owns, in one transaction.
	Reactivate(id uuid.UUID) error
}

// AccountRepositoryInterface defines the contract for account repository
// operations. The balance-mutating methods each run as one transaction
// holding a row lock on the account for the read-modify-write-log sequence,
// and append the corresponding movement before committing.
type AccountRepositoryInterface interface {
	CreateWithOpeningMovement(account *models.Account, openingBalance decimal.Decimal) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByNumber(accountNumber string) (*models.Account, error)
	GetByClientID(clientID uuid.UUID) ([]models.Account, error)
	ExistsForClient(clientID uuid.UUID, kind, category string) (bool, error)
	Search(term string) ([]models.Account, error)
	SumBalances() (decimal.Decimal, error)
	ExportRows() ([]models.ExportRow, error)

	Deposit(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Movement, error)
	Withdraw(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Movement, error)
	// Transfer debits amount+fee from the source and credits amount to the
	// destination atomically, locking both rows in ascending account-number
	// order. The fee is retained by the bank, not credited anywhere.
	Transfer(fromNumber, toNumber string, amount, fee decimal.Decimal) (sent, received *models.Movement, err error)
	ApplyMaintenanceFee(accountID uuid.UUID) (*models.Movement, error)
}

// MovementRepositoryInterface defines the contract for movement log
// operations. Movements are append-only; there is no update or delete.
type MovementRepositoryInterface interface {
	Create(movement *models.Movement) error
	GetByAccountID(accountID uuid.UUID, offset, limit int) ([]models.Movement, int64, error)
	GetByDateRange(accountID uuid.UUID, from, to time.Time) ([]models.Movement, error)
	SumByAccountID(accountID uuid.UUID) (decimal.Decimal, error)
	QueryAnalytics(filters models.MovementFilters) ([]models.MovementAnalyticsRow, error)
}

// TermDepositRepositoryInterface defines the contract for term deposit
// operations. Constitute and Redeem mutate the owning account's balance and
// write the movement in the same transaction.
type TermDepositRepositoryInterface interface {
	Constitute(accountID uuid.UUID, principal decimal.Decimal, termDays int, annualRate decimal.Decimal) (*models.TermDeposit, error)
	Redeem(depositID uuid.UUID, at time.Time) (*models.TermDeposit, *models.Movement, error)
	GetByID(id uuid.UUID) (*models.TermDeposit, error)
	ListByAccountID(accountID uuid.UUID) ([]models.TermDeposit, error)
}

// ParameterRepositoryInterface defines the contract for the bank parameter
// singleton and the account-number sequence.
type ParameterRepositoryInterface interface {
	Load() (*models.BankParameters, error)
	Save(params *models.BankParameters) error
	// NextAccountNumber advances the sequence and persists the new value
	// inside a serialized transaction; concurrent callers never receive the
	// same number.
	NextAccountNumber() (string, error)
}
