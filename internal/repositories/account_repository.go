package repositories

import (
	"errors"
	"fmt"

	"retail-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountNumberExists    = errors.New("account number already exists")
	ErrAccountExistsForClient = errors.New("client already has an account of this kind and category")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrSameAccount            = errors.New("source and destination are the same account")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{db: db}
}

// CreateWithOpeningMovement creates an account, and when an opening balance
// is given, the deposit movement that backs it, in one transaction. The
// account's stored balance is always the sum of its movements. A unique
// violation is classified after rollback: the one-account-per-(client, kind,
// category) index maps to ErrAccountExistsForClient, a taken account number
// to ErrAccountNumberExists.
func (r *accountRepository) CreateWithOpeningMovement(account *models.Account, openingBalance decimal.Decimal) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		account.Balance = openingBalance
		if err := tx.Create(account).Error; err != nil {
			return err
		}

		if openingBalance.GreaterThan(decimal.Zero) {
			movement := &models.Movement{
				AccountID:   account.ID,
				Amount:      openingBalance,
				Kind:        models.MovementKindDeposit,
				Description: "Opening deposit",
			}
			if err := tx.Create(movement).Error; err != nil {
				return fmt.Errorf("failed to create opening movement: %w", err)
			}
		}

		return nil
	})
	if err == nil {
		return nil
	}

	if isUniqueViolation(err) {
		exists, checkErr := r.ExistsForClient(account.ClientID, account.Kind, account.Category)
		if checkErr == nil && exists {
			return ErrAccountExistsForClient
		}
		return ErrAccountNumberExists
	}

	return fmt.Errorf("failed to create account: %w", err)
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByNumber retrieves an account by its account number, with the owner
// preloaded
func (r *accountRepository) GetByNumber(accountNumber string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Preload("Client").
		Where("account_number = ?", accountNumber).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return &account, nil
}

// GetByClientID retrieves all accounts for a client
func (r *accountRepository) GetByClientID(clientID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("client_id = ?", clientID).
		Order("account_number").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for client: %w", err)
	}
	return accounts, nil
}

// ExistsForClient checks if a client already owns an account of the given
// kind and category
func (r *accountRepository) ExistsForClient(clientID uuid.UUID, kind, category string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("client_id = ? AND kind = ? AND category = ?", clientID, kind, category).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return count > 0, nil
}

// Search retrieves accounts whose number, owner national ID or owner surname
// contains the term
func (r *accountRepository) Search(term string) ([]models.Account, error) {
	var accounts []models.Account
	like := "%" + term + "%"
	if err := r.db.Preload("Client").
		Joins("JOIN clients ON clients.id = accounts.client_id").
		Where("accounts.account_number LIKE ? OR clients.national_id LIKE ? OR clients.last_name LIKE ?",
			like, like, like).
		Order("accounts.account_number").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

// SumBalances returns the bank-wide balance total
func (r *accountRepository) SumBalances() (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Account{}).
		Select("COALESCE(SUM(balance), 0) as total").
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balances: %w", err)
	}

	return result.Total, nil
}

// ExportRows returns every account joined with its owner's identity fields
func (r *accountRepository) ExportRows() ([]models.ExportRow, error) {
	var rows []models.ExportRow
	if err := r.db.Model(&models.Account{}).
		Select(`accounts.account_number, accounts.kind, accounts.category, accounts.balance,
			clients.first_name, clients.last_name, clients.national_id, clients.email,
			clients.active as client_active`).
		Joins("JOIN clients ON clients.id = accounts.client_id").
		Order("accounts.account_number").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to build export rows: %w", err)
	}
	return rows, nil
}

// Deposit credits the account and appends the deposit movement atomically
func (r *accountRepository) Deposit(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Movement, error) {
	var movement *models.Movement

	err := r.db.Transaction(func(tx *gorm.DB) error {
		account, err := lockAccountByID(tx, accountID)
		if err != nil {
			return err
		}

		if err := account.Credit(amount); err != nil {
			return err
		}

		if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
			return fmt.Errorf("failed to credit account: %w", err)
		}

		movement = &models.Movement{
			AccountID:   account.ID,
			Amount:      amount,
			Kind:        models.MovementKindDeposit,
			Description: description,
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record deposit movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

// Withdraw debits the account under the variant's withdrawal rule and appends
// the withdrawal movement atomically
func (r *accountRepository) Withdraw(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Movement, error) {
	var movement *models.Movement

	err := r.db.Transaction(func(tx *gorm.DB) error {
		account, err := lockAccountByID(tx, accountID)
		if err != nil {
			return err
		}

		if !account.CanWithdraw(amount) {
			return ErrInsufficientFunds
		}

		account.Balance = account.Balance.Sub(amount)
		if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
			return fmt.Errorf("failed to debit account: %w", err)
		}

		movement = &models.Movement{
			AccountID:   account.ID,
			Amount:      amount.Neg(),
			Kind:        models.MovementKindWithdrawal,
			Description: description,
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record withdrawal movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

// Transfer moves amount from one account to another, debiting amount+fee from
// the source, as a single commit-or-abort unit. Both rows are locked in
// ascending account-number order so concurrent opposite-direction transfers
// cannot deadlock.
func (r *accountRepository) Transfer(fromNumber, toNumber string, amount, fee decimal.Decimal) (*models.Movement, *models.Movement, error) {
	if fromNumber == toNumber {
		return nil, nil, ErrSameAccount
	}

	var sent, received *models.Movement

	err := r.db.Transaction(func(tx *gorm.DB) error {
		first, second := fromNumber, toNumber
		if second < first {
			first, second = second, first
		}

		firstAcct, err := lockAccountByNumber(tx, first)
		if err != nil {
			return err
		}
		secondAcct, err := lockAccountByNumber(tx, second)
		if err != nil {
			return err
		}

		source, destination := firstAcct, secondAcct
		if source.AccountNumber != fromNumber {
			source, destination = secondAcct, firstAcct
		}

		total := amount.Add(fee)
		if !source.CanWithdraw(total) {
			return ErrInsufficientFunds
		}

		source.Balance = source.Balance.Sub(total)
		if err := tx.Model(source).Update("balance", source.Balance).Error; err != nil {
			return fmt.Errorf("failed to debit source account: %w", err)
		}

		destination.Balance = destination.Balance.Add(amount)
		if err := tx.Model(destination).Update("balance", destination.Balance).Error; err != nil {
			return fmt.Errorf("failed to credit destination account: %w", err)
		}

		sent = &models.Movement{
			AccountID:         source.ID,
			Amount:            total.Neg(),
			Kind:              models.MovementKindTransferSent,
			Description:       fmt.Sprintf("Transfer to %s (fee %s)", destination.AccountNumber, fee.StringFixed(2)),
			OriginNumber:      source.AccountNumber,
			DestinationNumber: destination.AccountNumber,
		}
		if err := tx.Create(sent).Error; err != nil {
			return fmt.Errorf("failed to record sent movement: %w", err)
		}

		received = &models.Movement{
			AccountID:         destination.ID,
			Amount:            amount,
			Kind:              models.MovementKindTransferReceived,
			Description:       fmt.Sprintf("Transfer from %s", source.AccountNumber),
			OriginNumber:      source.AccountNumber,
			DestinationNumber: destination.AccountNumber,
		}
		if err := tx.Create(received).Error; err != nil {
			return fmt.Errorf("failed to record received movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return sent, received, nil
}

// ApplyMaintenanceFee debits the periodic maintenance cost from a checking
// account and appends the fee movement atomically. The debit is
// unconditional: it may push the balance further into the overdraft line.
func (r *accountRepository) ApplyMaintenanceFee(accountID uuid.UUID) (*models.Movement, error) {
	var movement *models.Movement

	err := r.db.Transaction(func(tx *gorm.DB) error {
		account, err := lockAccountByID(tx, accountID)
		if err != nil {
			return err
		}

		cost := account.DiscountedMaintenanceCost()
		if cost.LessThanOrEqual(decimal.Zero) {
			return nil
		}

		// UpdateColumn skips the model hooks: the fee debit is unconditional
		// and may push the balance past the overdraft line.
		account.Balance = account.Balance.Sub(cost)
		if err := tx.Model(account).UpdateColumn("balance", account.Balance).Error; err != nil {
			return fmt.Errorf("failed to apply maintenance fee: %w", err)
		}

		movement = &models.Movement{
			AccountID:   account.ID,
			Amount:      cost.Neg(),
			Kind:        models.MovementKindMaintenanceFee,
			Description: "Monthly maintenance fee",
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record maintenance fee movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

// lockAccountByID loads an account under a row lock for the duration of the
// surrounding transaction
func lockAccountByID(tx *gorm.DB, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := withRowLock(tx).
		First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return &account, nil
}

// lockAccountByNumber loads an account by number under a row lock
func lockAccountByNumber(tx *gorm.DB, number string) (*models.Account, error) {
	var account models.Account
	if err := withRowLock(tx).
		Where("account_number = ?", number).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", number, err)
	}
	return &account, nil
}
