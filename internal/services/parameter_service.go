package services

import (
	"errors"
	"fmt"
	"log/slog"

	"retail-ledger/internal/models"
	"retail-ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrParametersNotSeeded = errors.New("bank parameters not seeded")
	ErrInvalidParameters   = errors.New("invalid bank parameters")
)

// parameterService implements ParameterServiceInterface
type parameterService struct {
	paramRepo repositories.ParameterRepositoryInterface
	logger    *slog.Logger
}

// NewParameterService creates the bank parameter service
func NewParameterService(paramRepo repositories.ParameterRepositoryInterface, logger *slog.Logger) ParameterServiceInterface {
	return &parameterService{
		paramRepo: paramRepo,
		logger:    logger,
	}
}

// Get loads the bank-wide parameter row
func (s *parameterService) Get() (*models.BankParameters, error) {
	params, err := s.paramRepo.Load()
	if err != nil {
		if errors.Is(err, repositories.ErrParametersNotFound) {
			return nil, ErrParametersNotSeeded
		}
		return nil, fmt.Errorf("failed to load bank parameters: %w", err)
	}
	return params, nil
}

// Update applies a partial update to the bank parameters. Nil fields keep
// their current value; the account number sequence is never writable here.
func (s *parameterService) Update(update ParameterUpdate) (*models.BankParameters, error) {
	params, err := s.Get()
	if err != nil {
		return nil, err
	}

	if update.TransferFee != nil {
		if update.TransferFee.LessThan(decimal.Zero) {
			return nil, ErrInvalidParameters
		}
		params.TransferFee = *update.TransferFee
	}

	if update.TermDepositAnnualRate != nil {
		if update.TermDepositAnnualRate.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidParameters
		}
		params.TermDepositAnnualRate = *update.TermDepositAnnualRate
	}

	if update.CheckingOverdraftLimit != nil {
		if update.CheckingOverdraftLimit.LessThan(decimal.Zero) {
			return nil, ErrInvalidParameters
		}
		params.CheckingOverdraftLimit = *update.CheckingOverdraftLimit
	}

	if update.CheckingMaintenanceCost != nil {
		if update.CheckingMaintenanceCost.LessThan(decimal.Zero) {
			return nil, ErrInvalidParameters
		}
		params.CheckingMaintenanceCost = *update.CheckingMaintenanceCost
	}

	if err := s.paramRepo.Save(params); err != nil {
		return nil, fmt.Errorf("failed to save bank parameters: %w", err)
	}

	s.logger.Info("bank parameters updated",
		"transfer_fee", params.TransferFee.String(),
		"term_deposit_annual_rate", params.TermDepositAnnualRate.String(),
		"checking_overdraft_limit", params.CheckingOverdraftLimit.String(),
		"checking_maintenance_cost", params.CheckingMaintenanceCost.String(),
	)

	return params, nil
}
