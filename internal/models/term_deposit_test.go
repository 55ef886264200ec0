package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputePayout(t *testing.T) {
	tests := []struct {
		name       string
		principal  string
		annualRate string
		days       int
		want       string
	}{
		{
			name:       "1000 at 45% for 30 days",
			principal:  "1000",
			annualRate: "0.45",
			days:       30,
			want:       "1036.99",
		},
		{
			name:       "full year returns principal plus rate",
			principal:  "1000",
			annualRate: "0.45",
			days:       365,
			want:       "1450",
		},
		{
			name:       "one day",
			principal:  "1000",
			annualRate: "0.45",
			days:       1,
			want:       "1001.23",
		},
		{
			name:       "zero rate pays principal back",
			principal:  "500",
			annualRate: "0",
			days:       90,
			want:       "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, _ := decimal.NewFromString(tt.principal)
			rate, _ := decimal.NewFromString(tt.annualRate)
			want, _ := decimal.NewFromString(tt.want)

			got := ComputePayout(principal, rate, tt.days)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestTermDeposit_Validate(t *testing.T) {
	accountID := uuid.New()
	now := time.Now()

	valid := TermDeposit{
		AccountID:    accountID,
		Principal:    decimal.NewFromFloat(1000.00),
		TermDays:     30,
		AnnualRate:   decimal.NewFromFloat(0.45),
		Payout:       decimal.NewFromFloat(1036.99),
		StartDate:    now,
		MaturityDate: now.AddDate(0, 0, 30),
		Status:       TermDepositStatusActive,
	}
	assert.NoError(t, valid.Validate())

	zeroPrincipal := valid
	zeroPrincipal.Principal = decimal.Zero
	assert.ErrorIs(t, zeroPrincipal.Validate(), ErrInvalidPrincipal)

	badTerm := valid
	badTerm.TermDays = 0
	assert.Error(t, badTerm.Validate())

	payoutBelowPrincipal := valid
	payoutBelowPrincipal.Payout = decimal.NewFromFloat(999.00)
	assert.Error(t, payoutBelowPrincipal.Validate())

	badStatus := valid
	badStatus.Status = "cancelled"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidTermDepositStatus)
}

func TestTermDeposit_IsMature(t *testing.T) {
	maturity := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	deposit := TermDeposit{MaturityDate: maturity}

	assert.False(t, deposit.IsMature(maturity.Add(-time.Second)))
	assert.True(t, deposit.IsMature(maturity))
	assert.True(t, deposit.IsMature(maturity.AddDate(0, 1, 0)))
}

func TestTermDeposit_Redeem(t *testing.T) {
	deposit := TermDeposit{
		Status:    TermDepositStatusActive,
		Principal: decimal.NewFromFloat(1000.00),
		Payout:    decimal.NewFromFloat(1036.99),
	}

	at := time.Now()
	err := deposit.Redeem(at)
	assert.NoError(t, err)
	assert.Equal(t, TermDepositStatusRedeemed, deposit.Status)
	assert.NotNil(t, deposit.RedeemedAt)
	assert.True(t, deposit.Interest().Equal(decimal.NewFromFloat(36.99)))

	err = deposit.Redeem(at)
	assert.ErrorIs(t, err, ErrTermDepositNotActive)
}
