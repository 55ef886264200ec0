package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"retail-ledger/internal/models"
	"retail-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("client already owns an account of this kind and category")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidAccountKind   = errors.New("invalid account kind or category")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrSameAccountTransfer  = errors.New("cannot transfer to the same account")
	ErrNotCheckingAccount   = errors.New("operation applies to checking accounts only")
)

// ledgerService implements LedgerServiceInterface
type ledgerService struct {
	accountRepo  repositories.AccountRepositoryInterface
	movementRepo repositories.MovementRepositoryInterface
	clientRepo   repositories.ClientRepositoryInterface
	paramRepo    repositories.ParameterRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewLedgerService creates the account ledger service
func NewLedgerService(
	accountRepo repositories.AccountRepositoryInterface,
	movementRepo repositories.MovementRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	paramRepo repositories.ParameterRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		clientRepo:   clientRepo,
		paramRepo:    paramRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// OpenAccount opens an account for a client. A client may hold at most one
// account per (kind, category) pair; the account number comes from the
// bank-wide sequence, and checking accounts receive the configured default
// overdraft limit and maintenance cost.
func (s *ledgerService) OpenAccount(clientID uuid.UUID, kind, category string, openingBalance decimal.Decimal) (*models.Account, error) {
	kind = strings.ToLower(kind)
	category = strings.ToLower(category)

	if !models.IsValidAccountKind(kind) || !models.IsValidAccountCategory(category) {
		return nil, ErrInvalidAccountKind
	}

	if openingBalance.LessThan(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to verify client: %w", err)
	}

	if !client.Active {
		return nil, ErrClientInactive
	}

	exists, err := s.accountRepo.ExistsForClient(clientID, kind, category)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if exists {
		return nil, ErrAccountAlreadyExists
	}

	account := &models.Account{
		ClientID: clientID,
		Kind:     kind,
		Category: category,
	}

	if kind == models.AccountKindChecking {
		params, err := s.paramRepo.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load bank parameters: %w", err)
		}
		account.OverdraftLimit = params.CheckingOverdraftLimit
		account.MaintenanceCost = params.CheckingMaintenanceCost
	}

	number, err := s.paramRepo.NextAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate account number: %w", err)
	}
	account.AccountNumber = number

	if err := s.accountRepo.CreateWithOpeningMovement(account, openingBalance); err != nil {
		if errors.Is(err, repositories.ErrAccountExistsForClient) {
			return nil, ErrAccountAlreadyExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.metrics.RecordAccountOpened(kind)
	s.logger.Info("account opened",
		"account_number", account.AccountNumber,
		"client_id", clientID,
		"kind", kind,
		"category", category,
	)

	return account, nil
}

// GetAccountByNumber retrieves an account by its account number
func (s *ledgerService) GetAccountByNumber(accountNumber string) (*models.Account, error) {
	account, err := s.accountRepo.GetByNumber(accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetClientAccounts retrieves all accounts owned by a client
func (s *ledgerService) GetClientAccounts(clientID uuid.UUID) ([]models.Account, error) {
	accounts, err := s.accountRepo.GetByClientID(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client accounts: %w", err)
	}
	return accounts, nil
}

// SearchAccounts retrieves accounts matching the term against account
// number, owner national ID or owner surname
func (s *ledgerService) SearchAccounts(term string) ([]models.Account, error) {
	accounts, err := s.accountRepo.Search(strings.TrimSpace(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

// GetMovements retrieves an account's movement history, newest first
func (s *ledgerService) GetMovements(accountNumber string, offset, limit int) ([]models.Movement, int64, error) {
	account, err := s.GetAccountByNumber(accountNumber)
	if err != nil {
		return nil, 0, err
	}

	movements, total, err := s.movementRepo.GetByAccountID(account.ID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get movements: %w", err)
	}

	return movements, total, nil
}

// Deposit credits the account. Valid deposits always succeed; a non-positive
// amount is rejected with no effect.
func (s *ledgerService) Deposit(accountNumber string, amount decimal.Decimal, description string) (*models.Movement, error) {
	started := time.Now()

	if amount.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordOperation("deposit", "rejected")
		return nil, ErrInvalidAmount
	}

	account, err := s.GetAccountByNumber(accountNumber)
	if err != nil {
		s.metrics.RecordOperation("deposit", "rejected")
		return nil, err
	}

	if description == "" {
		description = "Cash deposit"
	}

	movement, err := s.accountRepo.Deposit(account.ID, amount, description)
	if err != nil {
		s.metrics.RecordOperation("deposit", "failed")
		return nil, fmt.Errorf("failed to deposit: %w", err)
	}

	s.metrics.RecordOperation("deposit", "completed")
	s.metrics.ObserveOperationDuration("deposit", time.Since(started))
	s.logger.Info("deposit", "account_number", accountNumber, "amount", amount.String())

	return movement, nil
}

// Withdraw debits the account under the variant's withdrawal rule: savings
// never below zero, checking never below the overdraft limit.
func (s *ledgerService) Withdraw(accountNumber string, amount decimal.Decimal, description string) (*models.Movement, error) {
	started := time.Now()

	if amount.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordOperation("withdrawal", "rejected")
		return nil, ErrInvalidAmount
	}

	account, err := s.GetAccountByNumber(accountNumber)
	if err != nil {
		s.metrics.RecordOperation("withdrawal", "rejected")
		return nil, err
	}

	if description == "" {
		description = "Cash withdrawal"
	}

	movement, err := s.accountRepo.Withdraw(account.ID, amount, description)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			s.metrics.RecordOperation("withdrawal", "rejected")
			return nil, ErrInsufficientFunds
		}
		s.metrics.RecordOperation("withdrawal", "failed")
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}

	s.metrics.RecordOperation("withdrawal", "completed")
	s.metrics.ObserveOperationDuration("withdrawal", time.Since(started))
	s.logger.Info("withdrawal", "account_number", accountNumber, "amount", amount.String())

	return movement, nil
}

// Transfer moves amount between two accounts, debiting amount plus the
// configured transfer fee from the source. The fee is retained by the bank
// and credited nowhere, so the bank-wide balance total drops by the fee on
// every successful transfer. Both balance updates and both movements commit
// or roll back as one unit.
func (s *ledgerService) Transfer(fromNumber, toNumber string, amount decimal.Decimal) (*models.Movement, *models.Movement, error) {
	started := time.Now()

	if amount.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordOperation("transfer", "rejected")
		return nil, nil, ErrInvalidAmount
	}

	if fromNumber == toNumber {
		s.metrics.RecordOperation("transfer", "rejected")
		return nil, nil, ErrSameAccountTransfer
	}

	params, err := s.paramRepo.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bank parameters: %w", err)
	}

	sent, received, err := s.accountRepo.Transfer(fromNumber, toNumber, amount, params.TransferFee)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			s.metrics.RecordOperation("transfer", "rejected")
			return nil, nil, ErrAccountNotFound
		case errors.Is(err, repositories.ErrInsufficientFunds):
			s.metrics.RecordOperation("transfer", "rejected")
			return nil, nil, ErrInsufficientFunds
		case errors.Is(err, repositories.ErrSameAccount):
			s.metrics.RecordOperation("transfer", "rejected")
			return nil, nil, ErrSameAccountTransfer
		}
		s.metrics.RecordOperation("transfer", "failed")
		return nil, nil, fmt.Errorf("failed to transfer: %w", err)
	}

	s.metrics.RecordOperation("transfer", "completed")
	s.metrics.ObserveOperationDuration("transfer", time.Since(started))
	amountFloat, _ := amount.Float64()
	s.metrics.RecordTransferAmount(amountFloat)
	s.logger.Info("transfer",
		"from", fromNumber,
		"to", toNumber,
		"amount", amount.String(),
		"fee", params.TransferFee.String(),
	)

	return sent, received, nil
}

// ApplyMaintenanceFee debits the periodic maintenance cost from a checking
// account, with the 10% business discount, and records a maintenance_fee
// movement so the balance keeps matching the movement sum.
func (s *ledgerService) ApplyMaintenanceFee(accountNumber string) (*models.Movement, error) {
	account, err := s.GetAccountByNumber(accountNumber)
	if err != nil {
		return nil, err
	}

	if account.Kind != models.AccountKindChecking {
		return nil, ErrNotCheckingAccount
	}

	movement, err := s.accountRepo.ApplyMaintenanceFee(account.ID)
	if err != nil {
		s.metrics.RecordOperation("maintenance_fee", "failed")
		return nil, fmt.Errorf("failed to apply maintenance fee: %w", err)
	}

	s.metrics.RecordOperation("maintenance_fee", "completed")
	if movement != nil {
		s.logger.Info("maintenance fee applied",
			"account_number", accountNumber,
			"amount", movement.Amount.Abs().String(),
		)
	}

	return movement, nil
}
