package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"retail-ledger/internal/models"
	"retail-ledger/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrClientInactive    = errors.New("client is inactive")
	ErrInvalidClientData = errors.New("invalid client data")
)

// clientService implements ClientServiceInterface
type clientService struct {
	clientRepo repositories.ClientRepositoryInterface
	logger     *slog.Logger
}

// NewClientService creates a client service
func NewClientService(clientRepo repositories.ClientRepositoryInterface, logger *slog.Logger) ClientServiceInterface {
	return &clientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// CreateOrFetch registers a client. A national ID collision is not an error:
// the existing record is returned instead, so callers can treat "register"
// as idempotent on national ID.
func (s *clientService) CreateOrFetch(firstName, lastName, nationalID, email string) (*models.Client, bool, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	nationalID = strings.TrimSpace(nationalID)

	if firstName == "" || lastName == "" || nationalID == "" {
		return nil, false, ErrInvalidClientData
	}

	client := &models.Client{
		FirstName:  firstName,
		LastName:   lastName,
		NationalID: nationalID,
		Email:      strings.TrimSpace(email),
		Active:     true,
	}

	err := s.clientRepo.Create(client)
	if err == nil {
		s.logger.Info("client registered", "client_id", client.ID, "national_id", nationalID)
		return client, true, nil
	}

	if errors.Is(err, repositories.ErrDuplicateNationalID) {
		existing, lookupErr := s.clientRepo.GetByNationalID(nationalID)
		if lookupErr != nil {
			return nil, false, fmt.Errorf("failed to resolve duplicate national ID: %w", lookupErr)
		}
		return existing, false, nil
	}

	return nil, false, fmt.Errorf("failed to register client: %w", err)
}

// GetByID retrieves a client by ID
func (s *clientService) GetByID(id uuid.UUID) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// Search retrieves clients matching the term against national ID, first name
// or last name
func (s *clientService) Search(term string) ([]models.Client, error) {
	clients, err := s.clientRepo.Search(strings.TrimSpace(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	return clients, nil
}

// Deactivate soft deletes a client; accounts and movements stay on record
func (s *clientService) Deactivate(id uuid.UUID) error {
	if err := s.clientRepo.Deactivate(id); err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to deactivate client: %w", err)
	}

	s.logger.Info("client deactivated", "client_id", id)
	return nil
}

// Reactivate reactivates a client. Every owned account's balance is reset to
// zero, whatever it was before, including negative checking balances.
func (s *clientService) Reactivate(id uuid.UUID) error {
	if err := s.clientRepo.Reactivate(id); err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to reactivate client: %w", err)
	}

	s.logger.Info("client reactivated, balances reset", "client_id", id)
	return nil
}
