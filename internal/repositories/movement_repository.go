package repositories

import (
	"fmt"
	"time"

	"retail-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// movementRepository implements MovementRepositoryInterface
type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new movement repository
func NewMovementRepository(db *gorm.DB) MovementRepositoryInterface {
	return &movementRepository{db: db}
}

// Create appends a movement. Movements are append-only; this repository has
// no Update or Delete.
func (r *movementRepository) Create(movement *models.Movement) error {
	if err := r.db.Create(movement).Error; err != nil {
		return fmt.Errorf("failed to create movement: %w", err)
	}
	return nil
}

// GetByAccountID retrieves movements for an account, newest first
func (r *movementRepository) GetByAccountID(accountID uuid.UUID, offset, limit int) ([]models.Movement, int64, error) {
	var movements []models.Movement
	var total int64

	query := r.db.Model(&models.Movement{}).Where("account_id = ?", accountID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count movements: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("occurred_at DESC").
		Find(&movements).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get movements: %w", err)
	}

	return movements, total, nil
}

// GetByDateRange retrieves an account's movements inside [from, to]
func (r *movementRepository) GetByDateRange(accountID uuid.UUID, from, to time.Time) ([]models.Movement, error) {
	var movements []models.Movement
	if err := r.db.
		Where("account_id = ? AND occurred_at BETWEEN ? AND ?", accountID, from, to).
		Order("occurred_at DESC").
		Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to get movements by date range: %w", err)
	}
	return movements, nil
}

// SumByAccountID returns the signed sum of an account's movements. An
// account's balance always equals this value plus its opening balance.
func (r *movementRepository) SumByAccountID(accountID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Movement{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("account_id = ?", accountID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum movements: %w", err)
	}

	return result.Total, nil
}

// QueryAnalytics runs the joined movement query behind the analytics panel:
// movements in a date range joined with account and client fields, optionally
// narrowed by account category and movement kind, newest first.
func (r *movementRepository) QueryAnalytics(filters models.MovementFilters) ([]models.MovementAnalyticsRow, error) {
	query := r.db.Model(&models.Movement{}).
		Select(`movements.occurred_at, movements.kind, movements.amount,
			movements.description, movements.origin_number, movements.destination_number,
			accounts.account_number, accounts.category,
			clients.first_name, clients.last_name`).
		Joins("JOIN accounts ON accounts.id = movements.account_id").
		Joins("JOIN clients ON clients.id = accounts.client_id").
		Where("movements.occurred_at BETWEEN ? AND ?", filters.From, filters.To)

	if filters.Category != "" {
		query = query.Where("accounts.category = ?", filters.Category)
	}
	if filters.Kind != "" {
		query = query.Where("movements.kind = ?", filters.Kind)
	}

	var rows []models.MovementAnalyticsRow
	if err := query.Order("movements.occurred_at DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to run movement analytics query: %w", err)
	}

	return rows, nil
}
