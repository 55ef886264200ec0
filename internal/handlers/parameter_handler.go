package handlers

import (
	"errors"
	"net/http"

	"retail-ledger/internal/dto"
	apierrors "retail-ledger/internal/errors"
	"retail-ledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ParameterHandler handles bank parameter HTTP requests
type ParameterHandler struct {
	parameterService services.ParameterServiceInterface
}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler(parameterService services.ParameterServiceInterface) *ParameterHandler {
	return &ParameterHandler{parameterService: parameterService}
}

// GetParameters returns the bank-wide parameter values
func (h *ParameterHandler) GetParameters(c echo.Context) error {
	params, err := h.parameterService.Get()
	if err != nil {
		if errors.Is(err, services.ErrParametersNotSeeded) {
			return SendError(c, apierrors.ParametersNotSeeded)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ParametersResponse{Parameters: params})
}

// UpdateParameters applies a partial update to the bank parameters
func (h *ParameterHandler) UpdateParameters(c echo.Context) error {
	var req dto.UpdateParametersRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	update := services.ParameterUpdate{}

	if req.TransferFee != nil {
		fee, err := decimal.NewFromString(*req.TransferFee)
		if err != nil {
			return SendError(c, apierrors.ParametersInvalid, apierrors.WithDetails("transfer_fee: must be a valid amount"))
		}
		update.TransferFee = &fee
	}

	if req.TermDepositAnnualRate != nil {
		rate, err := decimal.NewFromString(*req.TermDepositAnnualRate)
		if err != nil {
			return SendError(c, apierrors.ParametersInvalid, apierrors.WithDetails("term_deposit_annual_rate: must be a valid rate"))
		}
		update.TermDepositAnnualRate = &rate
	}

	if req.CheckingOverdraftLimit != nil {
		limit, err := decimal.NewFromString(*req.CheckingOverdraftLimit)
		if err != nil {
			return SendError(c, apierrors.ParametersInvalid, apierrors.WithDetails("checking_overdraft_limit: must be a valid amount"))
		}
		update.CheckingOverdraftLimit = &limit
	}

	if req.CheckingMaintenanceCost != nil {
		cost, err := decimal.NewFromString(*req.CheckingMaintenanceCost)
		if err != nil {
			return SendError(c, apierrors.ParametersInvalid, apierrors.WithDetails("checking_maintenance_cost: must be a valid amount"))
		}
		update.CheckingMaintenanceCost = &cost
	}

	params, err := h.parameterService.Update(update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParametersNotSeeded):
			return SendError(c, apierrors.ParametersNotSeeded)
		case errors.Is(err, services.ErrInvalidParameters):
			return SendError(c, apierrors.ParametersInvalid)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ParametersResponse{
		Parameters: params,
		Message:    "Parameters updated",
	})
}
