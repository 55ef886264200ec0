package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"retail-ledger/internal/dto"
	apierrors "retail-ledger/internal/errors"
	"retail-ledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultMovementPageSize = 20
	maxMovementPageSize     = 100
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(ledgerService services.LedgerServiceInterface) *AccountHandler {
	return &AccountHandler{ledgerService: ledgerService}
}

// OpenAccount opens an account for a client
func (h *AccountHandler) OpenAccount(c echo.Context) error {
	var req dto.OpenAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return SendError(c, apierrors.ClientInvalidID)
	}

	opening := decimal.Zero
	if req.OpeningBalance != "" {
		opening, err = decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			return SendError(c, apierrors.AccountInvalidAmount, apierrors.WithDetails("opening_balance: must be a valid amount"))
		}
	}

	account, err := h.ledgerService.OpenAccount(clientID, req.Kind, req.Category, opening)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return SendError(c, apierrors.ClientNotFound)
		case errors.Is(err, services.ErrClientInactive):
			return SendError(c, apierrors.ClientInactive)
		case errors.Is(err, services.ErrAccountAlreadyExists):
			return SendError(c, apierrors.AccountAlreadyExists)
		case errors.Is(err, services.ErrInvalidAccountKind):
			return SendError(c, apierrors.AccountInvalidKind)
		case errors.Is(err, services.ErrInvalidAmount):
			return SendError(c, apierrors.AccountInvalidAmount)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.OpenAccountResponse{
		Account: account,
		Message: "Account opened",
	})
}

// GetAccount retrieves an account by its account number
func (h *AccountHandler) GetAccount(c echo.Context) error {
	account, err := h.ledgerService.GetAccountByNumber(c.Param("number"))
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return SendError(c, apierrors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountResponse{Account: account})
}

// SearchAccounts searches accounts by number, owner national ID or owner surname
func (h *AccountHandler) SearchAccounts(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return SendError(c, apierrors.ValidationRequiredField, apierrors.WithDetails("q: search term is required"))
	}

	accounts, err := h.ledgerService.SearchAccounts(term)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Total:    len(accounts),
	})
}

// GetMovements retrieves an account's movement history, newest first
func (h *AccountHandler) GetMovements(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultMovementPageSize
	}
	if limit > maxMovementPageSize {
		limit = maxMovementPageSize
	}

	movements, total, err := h.ledgerService.GetMovements(c.Param("number"), offset, limit)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return SendError(c, apierrors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MovementListResponse{
		Movements: movements,
		Total:     total,
		Offset:    offset,
		Limit:     limit,
	})
}

// Deposit credits an account
func (h *AccountHandler) Deposit(c echo.Context) error {
	var req dto.CashOperationRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, apierrors.AccountInvalidAmount)
	}

	movement, err := h.ledgerService.Deposit(c.Param("number"), amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return SendError(c, apierrors.AccountNotFound)
		case errors.Is(err, services.ErrInvalidAmount):
			return SendError(c, apierrors.AccountInvalidAmount)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.MovementResponse{
		Movement: movement,
		Message:  "Deposit completed",
	})
}

// Withdraw debits an account within its minimum balance rule
func (h *AccountHandler) Withdraw(c echo.Context) error {
	var req dto.CashOperationRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, apierrors.AccountInvalidAmount)
	}

	movement, err := h.ledgerService.Withdraw(c.Param("number"), amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return SendError(c, apierrors.AccountNotFound)
		case errors.Is(err, services.ErrInvalidAmount):
			return SendError(c, apierrors.AccountInvalidAmount)
		case errors.Is(err, services.ErrInsufficientFunds):
			return SendError(c, apierrors.AccountInsufficientFunds)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.MovementResponse{
		Movement: movement,
		Message:  "Withdrawal completed",
	})
}

// Transfer moves funds from this account to another, charging the transfer fee
// to the source
func (h *AccountHandler) Transfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, apierrors.TransferInvalidAmount)
	}

	sent, received, err := h.ledgerService.Transfer(c.Param("number"), req.ToAccountNumber, amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return SendError(c, apierrors.AccountNotFound)
		case errors.Is(err, services.ErrSameAccountTransfer):
			return SendError(c, apierrors.TransferSameAccount)
		case errors.Is(err, services.ErrInvalidAmount):
			return SendError(c, apierrors.TransferInvalidAmount)
		case errors.Is(err, services.ErrInsufficientFunds):
			return SendError(c, apierrors.TransferInsufficientFunds)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.TransferResponse{
		Message:  "Transfer completed",
		Sent:     sent,
		Received: received,
	})
}

// ApplyMaintenanceFee debits the periodic maintenance cost from a checking account
func (h *AccountHandler) ApplyMaintenanceFee(c echo.Context) error {
	movement, err := h.ledgerService.ApplyMaintenanceFee(c.Param("number"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return SendError(c, apierrors.AccountNotFound)
		case errors.Is(err, services.ErrNotCheckingAccount):
			return SendError(c, apierrors.AccountNotChecking)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.MovementResponse{
		Movement: movement,
		Message:  "Maintenance fee applied",
	})
}
