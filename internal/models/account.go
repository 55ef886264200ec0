package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountKindSavings  = "savings"
	AccountKindChecking = "checking"

	AccountCategoryPerson   = "person"
	AccountCategoryBusiness = "business"

	// AccountNumberWidth is the fixed width of the zero-padded sequential
	// account number.
	AccountNumberWidth = 8
)

var (
	ErrInvalidAccountKind     = errors.New("invalid account kind")
	ErrInvalidAccountCategory = errors.New("invalid account category")
	ErrInvalidBalance         = errors.New("balance below allowed minimum")
	ErrInsufficientFunds      = errors.New("insufficient funds")
)

// Account represents a bank account. Savings and checking accounts share one
// record shape; the overdraft limit and maintenance cost are meaningful only
// when Kind is checking and stay zero otherwise.
type Account struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountNumber   string          `gorm:"type:varchar(12);uniqueIndex;not null" json:"account_number"`
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_owner_slot,priority:1" json:"client_id"`
	Kind            string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_owner_slot,priority:2" json:"kind"`
	Category        string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_owner_slot,priority:3" json:"category"`
	Balance         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	OverdraftLimit  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"overdraft_limit"`
	MaintenanceCost decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"maintenance_cost"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Client    Client     `gorm:"foreignKey:ClientID" json:"-"`
	Movements []Movement `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.ClientID == uuid.Nil {
		return errors.New("client ID is required")
	}

	if a.AccountNumber == "" {
		return errors.New("account number is required")
	}

	if !IsValidAccountKind(a.Kind) {
		return ErrInvalidAccountKind
	}

	if !IsValidAccountCategory(a.Category) {
		return ErrInvalidAccountCategory
	}

	if a.Kind == AccountKindSavings {
		if !a.OverdraftLimit.IsZero() || !a.MaintenanceCost.IsZero() {
			return errors.New("savings accounts carry no overdraft limit or maintenance cost")
		}
	}

	if a.OverdraftLimit.LessThan(decimal.Zero) {
		return errors.New("overdraft limit cannot be negative")
	}

	if a.MaintenanceCost.LessThan(decimal.Zero) {
		return errors.New("maintenance cost cannot be negative")
	}

	if a.Balance.LessThan(a.MinimumBalance()) {
		return ErrInvalidBalance
	}

	return nil
}

// MinimumBalance returns the lowest balance the account may reach: zero for
// savings, the negated overdraft limit for checking.
func (a *Account) MinimumBalance() decimal.Decimal {
	if a.Kind == AccountKindChecking {
		return a.OverdraftLimit.Neg()
	}
	return decimal.Zero
}

// CanWithdraw reports whether amount can be taken from the account. Savings
// accounts are limited to the real balance; checking accounts may dip into
// the overdraft line.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return a.Balance.Sub(amount).GreaterThanOrEqual(a.MinimumBalance())
}

// Credit credits the account
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("credit amount must be positive")
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debit debits the account, honoring the variant's withdrawal rule
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("debit amount must be positive")
	}

	if !a.CanWithdraw(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// DiscountedMaintenanceCost returns the periodic maintenance cost after the
// business discount. Business checking accounts pay 10% less.
func (a *Account) DiscountedMaintenanceCost() decimal.Decimal {
	cost := a.MaintenanceCost
	if a.Category == AccountCategoryBusiness {
		cost = cost.Mul(decimal.NewFromFloat(0.90))
	}
	return cost.Round(2)
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// Helper functions

// IsValidAccountKind checks if the account kind is valid
func IsValidAccountKind(kind string) bool {
	switch kind {
	case AccountKindSavings, AccountKindChecking:
		return true
	default:
		return false
	}
}

// IsValidAccountCategory checks if the account category is valid
func IsValidAccountCategory(category string) bool {
	switch category {
	case AccountCategoryPerson, AccountCategoryBusiness:
		return true
	default:
		return false
	}
}

// FormatAccountNumber renders a sequence value as a fixed-width account number
func FormatAccountNumber(seq int64) string {
	return fmt.Sprintf("%0*d", AccountNumberWidth, seq)
}
