package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TermDepositStatusActive   = "active"
	TermDepositStatusRedeemed = "redeemed"

	daysPerYear = 365
)

var (
	ErrInvalidTermDepositStatus = errors.New("invalid term deposit status")
	ErrInvalidPrincipal         = errors.New("principal must be positive")
	ErrTermDepositNotActive     = errors.New("term deposit is not active")
)

// TermDeposit is a fixed-term investment tied to one account. The principal
// leaves the account's real balance at constitution; the payout (principal
// plus simple interest) returns to it at redemption, on or after maturity.
type TermDeposit struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Principal    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principal"`
	TermDays     int             `gorm:"not null" json:"term_days"`
	AnnualRate   decimal.Decimal `gorm:"type:decimal(8,6);not null" json:"annual_rate"`
	Payout       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"payout"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	MaturityDate time.Time       `gorm:"not null;index" json:"maturity_date"`
	Status       string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	RedeemedAt   *time.Time      `json:"redeemed_at,omitempty"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for TermDeposit
func (t *TermDeposit) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Status == "" {
		t.Status = TermDepositStatusActive
	}

	now := time.Now()
	if t.StartDate.IsZero() {
		t.StartDate = now
	}
	if t.MaturityDate.IsZero() {
		t.MaturityDate = t.StartDate.AddDate(0, 0, t.TermDays)
	}
	if t.Payout.IsZero() {
		t.Payout = ComputePayout(t.Principal, t.AnnualRate, t.TermDays)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for TermDeposit
func (t *TermDeposit) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the term deposit fields
func (t *TermDeposit) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if t.Principal.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrincipal
	}

	if t.TermDays <= 0 {
		return errors.New("term must be at least one day")
	}

	if t.AnnualRate.LessThan(decimal.Zero) {
		return errors.New("annual rate cannot be negative")
	}

	if t.Payout.LessThan(t.Principal) {
		return errors.New("payout cannot be below principal")
	}

	if !IsValidTermDepositStatus(t.Status) {
		return ErrInvalidTermDepositStatus
	}

	if t.MaturityDate.Before(t.StartDate) {
		return errors.New("maturity date precedes start date")
	}

	return nil
}

// IsActive returns true if the deposit has not been redeemed
func (t *TermDeposit) IsActive() bool {
	return t.Status == TermDepositStatusActive
}

// IsMature reports whether the deposit may be redeemed at the given time
func (t *TermDeposit) IsMature(at time.Time) bool {
	return !at.Before(t.MaturityDate)
}

// Interest returns the interest portion of the payout
func (t *TermDeposit) Interest() decimal.Decimal {
	return t.Payout.Sub(t.Principal)
}

// Redeem marks the deposit redeemed. The transition is one-way; a redeemed
// deposit never becomes active again.
func (t *TermDeposit) Redeem(at time.Time) error {
	if t.Status != TermDepositStatusActive {
		return ErrTermDepositNotActive
	}

	t.Status = TermDepositStatusRedeemed
	t.RedeemedAt = &at
	return nil
}

// TableName returns the table name for TermDeposit
func (t *TermDeposit) TableName() string {
	return "term_deposits"
}

// Helper functions

// IsValidTermDepositStatus checks if the status is valid
func IsValidTermDepositStatus(status string) bool {
	switch status {
	case TermDepositStatusActive, TermDepositStatusRedeemed:
		return true
	default:
		return false
	}
}

// ComputePayout returns principal plus simple interest:
// principal × rate × days / 365, rounded to cents.
func ComputePayout(principal, annualRate decimal.Decimal, days int) decimal.Decimal {
	interest := principal.
		Mul(annualRate).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(daysPerYear)).
		Round(2)
	return principal.Add(interest)
}
