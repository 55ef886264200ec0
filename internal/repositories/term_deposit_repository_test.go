package repositories

import (
	"testing"
	"time"

	"retail-ledger/internal/database"
	"retail-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TermDepositRepositorySuite defines the test suite for TermDepositRepository
type TermDepositRepositorySuite struct {
	suite.Suite
	db          *database.DB
	repo        TermDepositRepositoryInterface
	testClient  *models.Client
	testAccount *models.Account
}

// SetupTest runs before each test in the suite
func (s *TermDepositRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTermDepositRepository(s.db.DB)
	s.testClient = database.CreateTestClient(s.T(), s.db, "111222")
	s.testAccount = database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(5000.00))
}

// TearDownTest runs after each test in the suite
func (s *TermDepositRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTermDepositRepositorySuite runs the test suite
func TestTermDepositRepositorySuite(t *testing.T) {
	suite.Run(t, new(TermDepositRepositorySuite))
}

// createMatureDeposit inserts an already-matured active deposit directly so
// redemption paths can be exercised without waiting out a term.
func (s *TermDepositRepositorySuite) createMatureDeposit(principal decimal.Decimal) *models.TermDeposit {
	start := time.Now().AddDate(0, 0, -60)
	deposit := &models.TermDeposit{
		AccountID:    s.testAccount.ID,
		Principal:    principal,
		TermDays:     30,
		AnnualRate:   decimal.NewFromFloat(0.45),
		StartDate:    start,
		MaturityDate: start.AddDate(0, 0, 30),
	}
	s.NoError(s.db.Create(deposit).Error)
	return deposit
}

func (s *TermDepositRepositorySuite) TestConstitute() {
	deposit, err := s.repo.Constitute(s.testAccount.ID, decimal.NewFromFloat(1000.00), 30, decimal.NewFromFloat(0.45))
	s.NoError(err)
	s.NotEqual(uuid.Nil, deposit.ID)
	s.Equal(models.TermDepositStatusActive, deposit.Status)
	s.True(deposit.Payout.Equal(decimal.NewFromFloat(1036.99)))
	s.Equal(deposit.StartDate.AddDate(0, 0, 30).Truncate(time.Second), deposit.MaturityDate.Truncate(time.Second))

	// Principal left the account and the debit movement is on record
	var account models.Account
	s.NoError(s.db.First(&account, "id = ?", s.testAccount.ID).Error)
	s.True(account.Balance.Equal(decimal.NewFromFloat(4000.00)))

	var movements []models.Movement
	s.NoError(s.db.Where("account_id = ? AND kind = ?", s.testAccount.ID, models.MovementKindTermDepositDebit).
		Find(&movements).Error)
	s.Len(movements, 1)
	s.True(movements[0].Amount.Equal(decimal.NewFromFloat(-1000.00)))
}

func (s *TermDepositRepositorySuite) TestConstitute_PrincipalExceedsBalance() {
	_, err := s.repo.Constitute(s.testAccount.ID, decimal.NewFromFloat(5000.01), 30, decimal.NewFromFloat(0.45))
	s.ErrorIs(err, ErrInsufficientFunds)

	var account models.Account
	s.NoError(s.db.First(&account, "id = ?", s.testAccount.ID).Error)
	s.True(account.Balance.Equal(decimal.NewFromFloat(5000.00)))
}

func (s *TermDepositRepositorySuite) TestConstitute_OverdraftDoesNotFundDeposit() {
	checking := database.CreateTestCheckingAccount(s.T(), s.db, s.testClient, "00000002",
		decimal.NewFromFloat(100.00), decimal.NewFromFloat(10000.00))

	// Plenty of overdraft headroom, but only 100 of real balance
	_, err := s.repo.Constitute(checking.ID, decimal.NewFromFloat(500.00), 30, decimal.NewFromFloat(0.45))
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *TermDepositRepositorySuite) TestRedeem() {
	deposit := s.createMatureDeposit(decimal.NewFromFloat(1000.00))

	redeemed, movement, err := s.repo.Redeem(deposit.ID, time.Now())
	s.NoError(err)
	s.Equal(models.TermDepositStatusRedeemed, redeemed.Status)
	s.NotNil(redeemed.RedeemedAt)
	s.Equal(models.MovementKindTermDepositCredit, movement.Kind)
	s.True(movement.Amount.Equal(decimal.NewFromFloat(1036.99)))

	var account models.Account
	s.NoError(s.db.First(&account, "id = ?", s.testAccount.ID).Error)
	s.True(account.Balance.Equal(decimal.NewFromFloat(6036.99)))
}

func (s *TermDepositRepositorySuite) TestRedeem_NotMatured() {
	deposit, err := s.repo.Constitute(s.testAccount.ID, decimal.NewFromFloat(1000.00), 30, decimal.NewFromFloat(0.45))
	s.NoError(err)

	_, _, err = s.repo.Redeem(deposit.ID, time.Now())
	s.ErrorIs(err, ErrTermDepositNotMatured)

	// Principal stays out of the account until maturity
	var account models.Account
	s.NoError(s.db.First(&account, "id = ?", s.testAccount.ID).Error)
	s.True(account.Balance.Equal(decimal.NewFromFloat(4000.00)))
}

func (s *TermDepositRepositorySuite) TestRedeem_Twice() {
	deposit := s.createMatureDeposit(decimal.NewFromFloat(1000.00))

	_, _, err := s.repo.Redeem(deposit.ID, time.Now())
	s.NoError(err)

	_, _, err = s.repo.Redeem(deposit.ID, time.Now())
	s.ErrorIs(err, ErrTermDepositRedeemed)

	// No double credit
	var account models.Account
	s.NoError(s.db.First(&account, "id = ?", s.testAccount.ID).Error)
	s.True(account.Balance.Equal(decimal.NewFromFloat(6036.99)))
}

func (s *TermDepositRepositorySuite) TestRedeem_NotFound() {
	_, _, err := s.repo.Redeem(uuid.New(), time.Now())
	s.ErrorIs(err, ErrTermDepositNotFound)
}

func (s *TermDepositRepositorySuite) TestListByAccountID() {
	s.createMatureDeposit(decimal.NewFromFloat(500.00))
	_, err := s.repo.Constitute(s.testAccount.ID, decimal.NewFromFloat(1000.00), 90, decimal.NewFromFloat(0.45))
	s.NoError(err)

	deposits, err := s.repo.ListByAccountID(s.testAccount.ID)
	s.NoError(err)
	s.Len(deposits, 2)
	// Latest maturity first
	s.True(deposits[0].MaturityDate.After(deposits[1].MaturityDate))
}
