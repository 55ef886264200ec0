package repositories

import (
	"errors"
	"fmt"
	"strings"

	"retail-ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrDuplicateNationalID = errors.New("national ID already registered")
)

// clientRepository implements ClientRepositoryInterface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepositoryInterface {
	return &clientRepository{db: db}
}

// Create creates a new client
func (r *clientRepository) Create(client *models.Client) error {
	if err := r.db.Create(client).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNationalID
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetByID retrieves a client by ID
func (r *clientRepository) GetByID(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

// GetByNationalID retrieves a client by national ID
func (r *clientRepository) GetByNationalID(nationalID string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("national_id = ?", nationalID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by national ID: %w", err)
	}
	return &client, nil
}

// Update updates a client
func (r *clientRepository) Update(client *models.Client) error {
	if err := r.db.Save(client).Error; err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// Search retrieves clients whose national ID, first name or last name
// contains the term
func (r *clientRepository) Search(term string) ([]models.Client, error) {
	var clients []models.Client
	like := "%" + term + "%"
	if err := r.db.
		Where("national_id LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like).
		Order("last_name, first_name").
		Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	return clients, nil
}

// Deactivate soft deletes a client
func (r *clientRepository) Deactivate(id uuid.UUID) error {
	result := r.db.Model(&models.Client{}).Where("id = ?", id).UpdateColumn("active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Reactivate flips the client back to active and resets every owned account's
// balance to zero, whatever the balances were before.
func (r *clientRepository) Reactivate(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Client{}).Where("id = ?", id).UpdateColumn("active", true)
		if result.Error != nil {
			return fmt.Errorf("failed to reactivate client: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrClientNotFound
		}

		if err := tx.Model(&models.Account{}).
			Where("client_id = ?", id).
			UpdateColumn("balance", 0).Error; err != nil {
			return fmt.Errorf("failed to zero account balances: %w", err)
		}

		return nil
	})
}

// isUniqueViolation recognizes duplicate-key failures from both Postgres and
// the sqlite test driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
