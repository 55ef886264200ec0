package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankParametersID is the primary key of the single parameters row.
const BankParametersID = 1

// BankParameters is the bank-wide configuration singleton: fee schedule,
// defaults applied to new checking accounts, and the last issued value of the
// account-number sequence. Every mutation is persisted immediately; the
// sequence is only advanced inside a serialized transaction.
type BankParameters struct {
	ID                      int             `gorm:"primary_key;check:id = 1" json:"-"`
	TransferFee             decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"transfer_fee"`
	TermDepositAnnualRate   decimal.Decimal `gorm:"type:decimal(8,6);not null" json:"term_deposit_annual_rate"`
	CheckingOverdraftLimit  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"checking_overdraft_limit"`
	CheckingMaintenanceCost decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"checking_maintenance_cost"`
	LastAccountNumber       int64           `gorm:"not null;default:0" json:"last_account_number"`
	UpdatedAt               time.Time       `gorm:"not null" json:"updated_at"`
}

// DefaultBankParameters returns the parameter values a fresh installation
// starts from.
func DefaultBankParameters() *BankParameters {
	return &BankParameters{
		ID:                      BankParametersID,
		TransferFee:             decimal.NewFromFloat(50.00),
		TermDepositAnnualRate:   decimal.NewFromFloat(0.45),
		CheckingOverdraftLimit:  decimal.NewFromFloat(10000.00),
		CheckingMaintenanceCost: decimal.NewFromFloat(100.00),
		LastAccountNumber:       0,
	}
}

// BeforeSave hook for BankParameters
func (p *BankParameters) BeforeSave(tx *gorm.DB) error {
	p.ID = BankParametersID
	p.UpdatedAt = time.Now()
	return p.Validate()
}

// Validate validates the parameter fields
func (p *BankParameters) Validate() error {
	if p.TransferFee.LessThan(decimal.Zero) {
		return errors.New("transfer fee cannot be negative")
	}

	if p.TermDepositAnnualRate.LessThan(decimal.Zero) {
		return errors.New("term deposit rate cannot be negative")
	}

	if p.CheckingOverdraftLimit.LessThan(decimal.Zero) {
		return errors.New("checking overdraft limit cannot be negative")
	}

	if p.CheckingMaintenanceCost.LessThan(decimal.Zero) {
		return errors.New("checking maintenance cost cannot be negative")
	}

	if p.LastAccountNumber < 0 {
		return errors.New("account number sequence cannot be negative")
	}

	return nil
}

// TableName returns the table name for BankParameters
func (p *BankParameters) TableName() string {
	return "bank_parameters"
}
