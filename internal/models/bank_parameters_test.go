package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBankParameters(t *testing.T) {
	params := DefaultBankParameters()

	assert.Equal(t, BankParametersID, params.ID)
	assert.True(t, params.TransferFee.Equal(decimal.NewFromFloat(50.00)))
	assert.True(t, params.TermDepositAnnualRate.Equal(decimal.NewFromFloat(0.45)))
	assert.True(t, params.CheckingOverdraftLimit.Equal(decimal.NewFromFloat(10000.00)))
	assert.True(t, params.CheckingMaintenanceCost.Equal(decimal.NewFromFloat(100.00)))
	assert.Equal(t, int64(0), params.LastAccountNumber)
}

func TestBankParameters_Validate(t *testing.T) {
	params := DefaultBankParameters()
	assert.NoError(t, params.Validate())

	negativeFee := DefaultBankParameters()
	negativeFee.TransferFee = decimal.NewFromFloat(-1.00)
	assert.Error(t, negativeFee.Validate())

	negativeRate := DefaultBankParameters()
	negativeRate.TermDepositAnnualRate = decimal.NewFromFloat(-0.01)
	assert.Error(t, negativeRate.Validate())

	negativeSequence := DefaultBankParameters()
	negativeSequence.LastAccountNumber = -1
	assert.Error(t, negativeSequence.Validate())
}
