package handlers

import (
	"errors"
	"net/http"

	"retail-ledger/internal/dto"
	apierrors "retail-ledger/internal/errors"
	"retail-ledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService services.ClientServiceInterface
	ledgerService services.LedgerServiceInterface
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService services.ClientServiceInterface, ledgerService services.LedgerServiceInterface) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		ledgerService: ledgerService,
	}
}

// RegisterClient registers a new client, or returns the existing one when the
// national ID is already on file
func (h *ClientHandler) RegisterClient(c echo.Context) error {
	var req dto.RegisterClientRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	client, created, err := h.clientService.CreateOrFetch(req.FirstName, req.LastName, req.NationalID, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrInvalidClientData) {
			return SendError(c, apierrors.ValidationRequiredField)
		}
		return SendSystemError(c, err)
	}

	status := http.StatusCreated
	message := "Client registered"
	if !created {
		status = http.StatusOK
		message = "Client already registered with this national ID"
	}

	return c.JSON(status, dto.RegisterClientResponse{
		Client:  client,
		Created: created,
		Message: message,
	})
}

// GetClient retrieves a client by ID
func (h *ClientHandler) GetClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ClientInvalidID)
	}

	client, err := h.clientService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return SendError(c, apierrors.ClientNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ClientResponse{Client: client})
}

// SearchClients searches clients by national ID, first name or last name
func (h *ClientHandler) SearchClients(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return SendError(c, apierrors.ValidationRequiredField, apierrors.WithDetails("q: search term is required"))
	}

	clients, err := h.clientService.Search(term)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ClientListResponse{
		Clients: clients,
		Total:   len(clients),
	})
}

// GetClientAccounts retrieves all accounts owned by a client
func (h *ClientHandler) GetClientAccounts(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ClientInvalidID)
	}

	if _, err := h.clientService.GetByID(id); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return SendError(c, apierrors.ClientNotFound)
		}
		return SendSystemError(c, err)
	}

	accounts, err := h.ledgerService.GetClientAccounts(id)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Total:    len(accounts),
	})
}

// DeactivateClient soft deletes a client; accounts and movements stay on record
func (h *ClientHandler) DeactivateClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ClientInvalidID)
	}

	if err := h.clientService.Deactivate(id); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return SendError(c, apierrors.ClientNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Client deactivated"})
}

// ReactivateClient reactivates a client and resets the balances of every
// owned account to zero
func (h *ClientHandler) ReactivateClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ClientInvalidID)
	}

	if err := h.clientService.Reactivate(id); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return SendError(c, apierrors.ClientNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Client reactivated, account balances reset"})
}
