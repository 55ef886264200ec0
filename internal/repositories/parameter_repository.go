package repositories

import (
	"errors"
	"fmt"

	"retail-ledger/internal/models"

	"gorm.io/gorm"
)

var ErrParametersNotFound = errors.New("bank parameters not seeded")

// parameterRepository implements ParameterRepositoryInterface
type parameterRepository struct {
	db *gorm.DB
}

// NewParameterRepository creates a new parameter repository
func NewParameterRepository(db *gorm.DB) ParameterRepositoryInterface {
	return &parameterRepository{db: db}
}

// Load reads the singleton parameter row
func (r *parameterRepository) Load() (*models.BankParameters, error) {
	var params models.BankParameters
	if err := r.db.First(&params, "id = ?", models.BankParametersID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParametersNotFound
		}
		return nil, fmt.Errorf("failed to load bank parameters: %w", err)
	}
	return &params, nil
}

// Save persists the singleton parameter row immediately
func (r *parameterRepository) Save(params *models.BankParameters) error {
	if err := r.db.Save(params).Error; err != nil {
		return fmt.Errorf("failed to save bank parameters: %w", err)
	}
	return nil
}

// NextAccountNumber advances the account-number sequence under a row lock and
// persists the new value before returning it. Two concurrent callers can
// never observe the same number: the second transaction waits on the lock and
// reads the first one's committed increment.
func (r *parameterRepository) NextAccountNumber() (string, error) {
	var issued int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var params models.BankParameters
		if err := withRowLock(tx).
			First(&params, "id = ?", models.BankParametersID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParametersNotFound
			}
			return fmt.Errorf("failed to lock bank parameters: %w", err)
		}

		params.LastAccountNumber++
		issued = params.LastAccountNumber

		if err := tx.Model(&params).
			Update("last_account_number", params.LastAccountNumber).Error; err != nil {
			return fmt.Errorf("failed to advance account number sequence: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return models.FormatAccountNumber(issued), nil
}
