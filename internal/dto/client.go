package dto

import (
	"retail-ledger/internal/models"
)

// Client Request DTOs

// RegisterClientRequest represents the request payload for registering a client
type RegisterClientRequest struct {
	FirstName  string `json:"first_name" validate:"required,min=1,max=100"`
	LastName   string `json:"last_name" validate:"required,min=1,max=100"`
	NationalID string `json:"national_id" validate:"required,national_id"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// Client Response DTOs

// RegisterClientResponse represents the response after registering a client.
// Created is false when the national ID already belonged to a client and the
// existing record was returned instead.
type RegisterClientResponse struct {
	Client  *models.Client `json:"client"`
	Created bool           `json:"created"`
	Message string         `json:"message"`
}

// ClientResponse represents a single client in API responses
type ClientResponse struct {
	*models.Client
}

// ClientListResponse represents a list of clients from a search
type ClientListResponse struct {
	Clients []models.Client `json:"clients"`
	Total   int             `json:"total"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
