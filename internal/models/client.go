package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNationalIDRequired = errors.New("national ID is required")
	ErrClientInactive     = errors.New("client is inactive")
)

// Client represents an account holder
type Client struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName  string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"last_name"`
	NationalID string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"national_id"`
	Email      string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Accounts []Account `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate hook for Client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Client
func (c *Client) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

// Validate validates the client fields
func (c *Client) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return errors.New("first name is required")
	}

	if strings.TrimSpace(c.LastName) == "" {
		return errors.New("last name is required")
	}

	if strings.TrimSpace(c.NationalID) == "" {
		return ErrNationalIDRequired
	}

	return nil
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Deactivate marks the client as inactive (soft delete)
func (c *Client) Deactivate() {
	c.Active = false
}

// Reactivate marks the client as active again. Zeroing the balances of the
// client's accounts is the repository's job; it happens in the same
// transaction as this flag flip.
func (c *Client) Reactivate() {
	c.Active = true
}

// TableName returns the table name for Client
func (c *Client) TableName() string {
	return "clients"
}
