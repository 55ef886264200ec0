package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MovementKindDeposit           = "deposit"
	MovementKindWithdrawal        = "withdrawal"
	MovementKindTransferSent      = "transfer_sent"
	MovementKindTransferReceived  = "transfer_received"
	MovementKindTermDepositDebit  = "term_deposit_debit"
	MovementKindTermDepositCredit = "term_deposit_credit"
	MovementKindMaintenanceFee    = "maintenance_fee"
)

var (
	ErrInvalidMovementKind   = errors.New("invalid movement kind")
	ErrInvalidMovementAmount = errors.New("movement amount sign does not match kind")
)

// Movement is one append-only ledger entry. Amount is signed: credits are
// positive, debits negative, so an account's balance always equals the sum of
// its movement amounts. Rows are never updated or deleted after creation.
type Movement struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	OccurredAt        time.Time       `gorm:"not null;index" json:"occurred_at"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Kind              string          `gorm:"type:varchar(30);not null" json:"kind"`
	Description       string          `gorm:"type:text" json:"description,omitempty"`
	OriginNumber      string          `gorm:"type:varchar(12)" json:"origin_number,omitempty"`
	DestinationNumber string          `gorm:"type:varchar(12)" json:"destination_number,omitempty"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Movement
func (m *Movement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	now := time.Now()
	if m.OccurredAt.IsZero() {
		m.OccurredAt = now
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}

	return m.Validate()
}

// Validate validates the movement fields
func (m *Movement) Validate() error {
	if m.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidMovementKind(m.Kind) {
		return ErrInvalidMovementKind
	}

	if m.Amount.IsZero() {
		return errors.New("movement amount cannot be zero")
	}

	if MovementKindIsCredit(m.Kind) != m.Amount.GreaterThan(decimal.Zero) {
		return ErrInvalidMovementAmount
	}

	if m.Kind == MovementKindTransferSent || m.Kind == MovementKindTransferReceived {
		if m.OriginNumber == "" || m.DestinationNumber == "" {
			return errors.New("transfer movements must carry both account numbers")
		}
	} else if m.OriginNumber != "" || m.DestinationNumber != "" {
		return errors.New("only transfer movements carry account numbers")
	}

	return nil
}

// IsCredit reports whether the movement increases the balance
func (m *Movement) IsCredit() bool {
	return m.Amount.GreaterThan(decimal.Zero)
}

// TableName returns the table name for Movement
func (m *Movement) TableName() string {
	return "movements"
}

// Helper functions

// IsValidMovementKind checks if the movement kind is valid
func IsValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindDeposit, MovementKindWithdrawal,
		MovementKindTransferSent, MovementKindTransferReceived,
		MovementKindTermDepositDebit, MovementKindTermDepositCredit,
		MovementKindMaintenanceFee:
		return true
	default:
		return false
	}
}

// MovementKindIsCredit reports whether the kind credits the account
func MovementKindIsCredit(kind string) bool {
	switch kind {
	case MovementKindDeposit, MovementKindTransferReceived, MovementKindTermDepositCredit:
		return true
	default:
		return false
	}
}
