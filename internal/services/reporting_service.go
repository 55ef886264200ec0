package services

import (
	"fmt"
	"log/slog"

	"retail-ledger/internal/models"
	"retail-ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

// reportingService implements ReportingServiceInterface
type reportingService struct {
	accountRepo  repositories.AccountRepositoryInterface
	movementRepo repositories.MovementRepositoryInterface
	logger       *slog.Logger
}

// NewReportingService creates the reporting service
func NewReportingService(
	accountRepo repositories.AccountRepositoryInterface,
	movementRepo repositories.MovementRepositoryInterface,
	logger *slog.Logger,
) ReportingServiceInterface {
	return &reportingService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// GlobalBalanceTotal sums the balances of every account in the bank,
// including negative checking balances
func (s *reportingService) GlobalBalanceTotal() (decimal.Decimal, error) {
	total, err := s.accountRepo.SumBalances()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balances: %w", err)
	}
	return total, nil
}

// FullExport returns one row per account with the owner's identity attached
func (s *reportingService) FullExport() ([]models.ExportRow, error) {
	rows, err := s.accountRepo.ExportRows()
	if err != nil {
		return nil, fmt.Errorf("failed to export accounts: %w", err)
	}

	s.logger.Info("full export generated", "rows", len(rows))
	return rows, nil
}

// MovementAnalytics returns movements within a date range joined with their
// account and owner, optionally narrowed by account category and movement
// kind, newest first
func (s *reportingService) MovementAnalytics(filters models.MovementFilters) ([]models.MovementAnalyticsRow, error) {
	if filters.To.Before(filters.From) {
		return nil, fmt.Errorf("invalid date range: %s is before %s", filters.To.Format("2006-01-02"), filters.From.Format("2006-01-02"))
	}

	rows, err := s.movementRepo.QueryAnalytics(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to query movement analytics: %w", err)
	}

	return rows, nil
}
