package handlers

import (
	"errors"
	"net/http"

	"retail-ledger/internal/dto"
	apierrors "retail-ledger/internal/errors"
	"retail-ledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TermDepositHandler handles term deposit HTTP requests
type TermDepositHandler struct {
	depositService services.TermDepositServiceInterface
}

// NewTermDepositHandler creates a new term deposit handler
func NewTermDepositHandler(depositService services.TermDepositServiceInterface) *TermDepositHandler {
	return &TermDepositHandler{depositService: depositService}
}

// Constitute opens a term deposit funded from the account's balance
func (h *TermDepositHandler) Constitute(c echo.Context) error {
	var req dto.ConstituteTermDepositRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return SendError(c, apierrors.TermDepositInvalidAmount)
	}

	var annualRate *decimal.Decimal
	if req.AnnualRate != "" {
		rate, err := decimal.NewFromString(req.AnnualRate)
		if err != nil {
			return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("annual_rate: must be a valid rate"))
		}
		annualRate = &rate
	}

	deposit, err := h.depositService.Constitute(c.Param("number"), principal, req.TermDays, annualRate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return SendError(c, apierrors.AccountNotFound)
		case errors.Is(err, services.ErrInvalidTermDepositAmount):
			return SendError(c, apierrors.TermDepositInvalidAmount)
		case errors.Is(err, services.ErrInvalidTermDays):
			return SendError(c, apierrors.TermDepositInvalidTerm)
		case errors.Is(err, services.ErrInsufficientFunds):
			return SendError(c, apierrors.TermDepositInvalidAmount, apierrors.WithDetails("principal exceeds the account balance"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.TermDepositResponse{
		Deposit: deposit,
		Message: "Term deposit constituted",
	})
}

// ListByAccount retrieves the term deposits funded from an account
func (h *TermDepositHandler) ListByAccount(c echo.Context) error {
	deposits, err := h.depositService.ListByAccount(c.Param("number"))
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return SendError(c, apierrors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TermDepositListResponse{
		Deposits: deposits,
		Total:    len(deposits),
	})
}

// Redeem pays out a matured term deposit back into its funding account
func (h *TermDepositHandler) Redeem(c echo.Context) error {
	depositID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("id: must be a valid UUID"))
	}

	deposit, movement, err := h.depositService.Redeem(depositID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTermDepositNotFound):
			return SendError(c, apierrors.TermDepositNotFound)
		case errors.Is(err, services.ErrTermDepositRedeemed):
			return SendError(c, apierrors.TermDepositRedeemed)
		case errors.Is(err, services.ErrTermDepositNotMatured):
			return SendError(c, apierrors.TermDepositNotMatured)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.RedeemTermDepositResponse{
		Deposit:  deposit,
		Movement: movement,
		Message:  "Term deposit redeemed",
	})
}
