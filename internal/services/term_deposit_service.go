package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"retail-ledger/internal/models"
	"retail-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrTermDepositNotFound      = errors.New("term deposit not found")
	ErrTermDepositNotMatured    = errors.New("term deposit has not matured yet")
	ErrTermDepositRedeemed      = errors.New("term deposit already redeemed")
	ErrInvalidTermDepositAmount = errors.New("term deposit principal must be positive")
	ErrInvalidTermDays          = errors.New("term must be at least one day")
)

// termDepositService implements TermDepositServiceInterface
type termDepositService struct {
	depositRepo repositories.TermDepositRepositoryInterface
	accountRepo repositories.AccountRepositoryInterface
	paramRepo   repositories.ParameterRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewTermDepositService creates the term deposit service
func NewTermDepositService(
	depositRepo repositories.TermDepositRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	paramRepo repositories.ParameterRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TermDepositServiceInterface {
	return &termDepositService{
		depositRepo: depositRepo,
		accountRepo: accountRepo,
		paramRepo:   paramRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Constitute opens a term deposit funded from the account's balance. The
// principal is checked against the real balance only, never the overdraft
// headroom, so a checking account cannot fund a deposit on credit. The payout
// is fixed at constitution time with simple interest on a 365-day year.
func (s *termDepositService) Constitute(accountNumber string, principal decimal.Decimal, termDays int, annualRate *decimal.Decimal) (*models.TermDeposit, error) {
	started := time.Now()

	if principal.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordOperation("term_deposit_constitute", "rejected")
		return nil, ErrInvalidTermDepositAmount
	}

	if termDays < 1 {
		s.metrics.RecordOperation("term_deposit_constitute", "rejected")
		return nil, ErrInvalidTermDays
	}

	account, err := s.accountRepo.GetByNumber(accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			s.metrics.RecordOperation("term_deposit_constitute", "rejected")
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	rate := decimal.Zero
	if annualRate != nil {
		rate = *annualRate
	} else {
		params, err := s.paramRepo.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load bank parameters: %w", err)
		}
		rate = params.TermDepositAnnualRate
	}

	if rate.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordOperation("term_deposit_constitute", "rejected")
		return nil, ErrInvalidTermDepositAmount
	}

	deposit, err := s.depositRepo.Constitute(account.ID, principal, termDays, rate)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			s.metrics.RecordOperation("term_deposit_constitute", "rejected")
			return nil, ErrInsufficientFunds
		}
		s.metrics.RecordOperation("term_deposit_constitute", "failed")
		return nil, fmt.Errorf("failed to constitute term deposit: %w", err)
	}

	s.metrics.RecordOperation("term_deposit_constitute", "completed")
	s.metrics.ObserveOperationDuration("term_deposit_constitute", time.Since(started))
	s.logger.Info("term deposit constituted",
		"deposit_id", deposit.ID,
		"account_number", accountNumber,
		"principal", principal.String(),
		"term_days", termDays,
		"payout", deposit.Payout.String(),
	)

	return deposit, nil
}

// Redeem pays out a matured term deposit back into its funding account
func (s *termDepositService) Redeem(depositID uuid.UUID) (*models.TermDeposit, *models.Movement, error) {
	started := time.Now()

	deposit, movement, err := s.depositRepo.Redeem(depositID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTermDepositNotFound):
			s.metrics.RecordOperation("term_deposit_redeem", "rejected")
			return nil, nil, ErrTermDepositNotFound
		case errors.Is(err, repositories.ErrTermDepositRedeemed):
			s.metrics.RecordOperation("term_deposit_redeem", "rejected")
			return nil, nil, ErrTermDepositRedeemed
		case errors.Is(err, repositories.ErrTermDepositNotMatured):
			s.metrics.RecordOperation("term_deposit_redeem", "rejected")
			return nil, nil, ErrTermDepositNotMatured
		}
		s.metrics.RecordOperation("term_deposit_redeem", "failed")
		return nil, nil, fmt.Errorf("failed to redeem term deposit: %w", err)
	}

	s.metrics.RecordOperation("term_deposit_redeem", "completed")
	s.metrics.ObserveOperationDuration("term_deposit_redeem", time.Since(started))
	s.logger.Info("term deposit redeemed",
		"deposit_id", deposit.ID,
		"payout", deposit.Payout.String(),
		"interest", deposit.Interest().String(),
	)

	return deposit, movement, nil
}

// ListByAccount retrieves the term deposits funded from an account
func (s *termDepositService) ListByAccount(accountNumber string) ([]models.TermDeposit, error) {
	account, err := s.accountRepo.GetByNumber(accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	deposits, err := s.depositRepo.ListByAccountID(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list term deposits: %w", err)
	}

	return deposits, nil
}
