package repositories

import (
	"errors"
	"fmt"
	"time"

	"retail-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTermDepositNotFound   = errors.New("term deposit not found")
	ErrTermDepositRedeemed   = errors.New("term deposit already redeemed")
	ErrTermDepositNotMatured = errors.New("term deposit has not reached maturity")
)

// termDepositRepository implements TermDepositRepositoryInterface
type termDepositRepository struct {
	db *gorm.DB
}

// NewTermDepositRepository creates a new term deposit repository
func NewTermDepositRepository(db *gorm.DB) TermDepositRepositoryInterface {
	return &termDepositRepository{db: db}
}

// Constitute creates an active term deposit and debits the principal from the
// account in one transaction. The principal must fit in the real balance;
// the overdraft line never funds an investment.
func (r *termDepositRepository) Constitute(accountID uuid.UUID, principal decimal.Decimal, termDays int, annualRate decimal.Decimal) (*models.TermDeposit, error) {
	var deposit *models.TermDeposit

	err := r.db.Transaction(func(tx *gorm.DB) error {
		account, err := lockAccountByID(tx, accountID)
		if err != nil {
			return err
		}

		if principal.GreaterThan(account.Balance) {
			return ErrInsufficientFunds
		}

		deposit = &models.TermDeposit{
			AccountID:  account.ID,
			Principal:  principal,
			TermDays:   termDays,
			AnnualRate: annualRate,
		}
		if err := tx.Create(deposit).Error; err != nil {
			return fmt.Errorf("failed to create term deposit: %w", err)
		}

		account.Balance = account.Balance.Sub(principal)
		if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
			return fmt.Errorf("failed to debit principal: %w", err)
		}

		movement := &models.Movement{
			AccountID:   account.ID,
			Amount:      principal.Neg(),
			Kind:        models.MovementKindTermDepositDebit,
			Description: fmt.Sprintf("Term deposit constituted, %d days", termDays),
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record term deposit debit: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return deposit, nil
}

// Redeem credits the payout back to the owning account and marks the deposit
// redeemed, in one transaction. Redeeming before maturity fails; redeeming a
// second time fails without double-crediting.
func (r *termDepositRepository) Redeem(depositID uuid.UUID, at time.Time) (*models.TermDeposit, *models.Movement, error) {
	var deposit models.TermDeposit
	var movement *models.Movement

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).
			First(&deposit, "id = ?", depositID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTermDepositNotFound
			}
			return fmt.Errorf("failed to lock term deposit: %w", err)
		}

		if !deposit.IsActive() {
			return ErrTermDepositRedeemed
		}

		if !deposit.IsMature(at) {
			return ErrTermDepositNotMatured
		}

		account, err := lockAccountByID(tx, deposit.AccountID)
		if err != nil {
			return err
		}

		account.Balance = account.Balance.Add(deposit.Payout)
		if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
			return fmt.Errorf("failed to credit payout: %w", err)
		}

		if err := deposit.Redeem(at); err != nil {
			return err
		}
		if err := tx.Model(&deposit).
			Updates(map[string]interface{}{
				"status":      deposit.Status,
				"redeemed_at": deposit.RedeemedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to mark term deposit redeemed: %w", err)
		}

		movement = &models.Movement{
			AccountID:   account.ID,
			Amount:      deposit.Payout,
			Kind:        models.MovementKindTermDepositCredit,
			Description: fmt.Sprintf("Term deposit redeemed, interest %s", deposit.Interest().StringFixed(2)),
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record term deposit credit: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &deposit, movement, nil
}

// GetByID retrieves a term deposit by ID
func (r *termDepositRepository) GetByID(id uuid.UUID) (*models.TermDeposit, error) {
	var deposit models.TermDeposit
	if err := r.db.First(&deposit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermDepositNotFound
		}
		return nil, fmt.Errorf("failed to get term deposit: %w", err)
	}
	return &deposit, nil
}

// ListByAccountID retrieves an account's term deposits ordered by maturity
// date, latest maturity first
func (r *termDepositRepository) ListByAccountID(accountID uuid.UUID) ([]models.TermDeposit, error) {
	var deposits []models.TermDeposit
	if err := r.db.Where("account_id = ?", accountID).
		Order("maturity_date DESC").
		Find(&deposits).Error; err != nil {
		return nil, fmt.Errorf("failed to list term deposits: %w", err)
	}
	return deposits, nil
}
