package repositories

import (
	"testing"

	"retail-ledger/internal/database"
	"retail-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AccountRepositorySuite defines the test suite for AccountRepository
type AccountRepositorySuite struct {
	suite.Suite
	db         *database.DB
	repo       AccountRepositoryInterface
	testClient *models.Client
}

// SetupTest runs before each test in the suite
func (s *AccountRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAccountRepository(s.db.DB)
	s.testClient = database.CreateTestClient(s.T(), s.db, "111222")
}

// TearDownTest runs after each test in the suite
func (s *AccountRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestAccountRepositorySuite runs the test suite
func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositorySuite))
}

func (s *AccountRepositorySuite) movementSum(accountID uuid.UUID) decimal.Decimal {
	var result struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.Movement{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("account_id = ?", accountID).
		Scan(&result).Error
	s.NoError(err)
	return result.Total
}

func (s *AccountRepositorySuite) TestCreateWithOpeningMovement() {
	account := &models.Account{
		AccountNumber: "00000001",
		ClientID:      s.testClient.ID,
		Kind:          models.AccountKindSavings,
		Category:      models.AccountCategoryPerson,
	}

	err := s.repo.CreateWithOpeningMovement(account, decimal.NewFromFloat(500.00))
	s.NoError(err)
	s.NotEqual(uuid.Nil, account.ID)
	s.True(account.Balance.Equal(decimal.NewFromFloat(500.00)))

	var movements []models.Movement
	s.NoError(s.db.Where("account_id = ?", account.ID).Find(&movements).Error)
	s.Len(movements, 1)
	s.Equal(models.MovementKindDeposit, movements[0].Kind)
	s.True(movements[0].Amount.Equal(decimal.NewFromFloat(500.00)))
}

func (s *AccountRepositorySuite) TestCreateWithOpeningMovement_ZeroBalanceNoMovement() {
	account := &models.Account{
		AccountNumber: "00000001",
		ClientID:      s.testClient.ID,
		Kind:          models.AccountKindSavings,
		Category:      models.AccountCategoryPerson,
	}

	s.NoError(s.repo.CreateWithOpeningMovement(account, decimal.Zero))

	var count int64
	s.NoError(s.db.Model(&models.Movement{}).Where("account_id = ?", account.ID).Count(&count).Error)
	s.Zero(count)
}

func (s *AccountRepositorySuite) TestCreateWithOpeningMovement_DuplicateNumber() {
	first := &models.Account{
		AccountNumber: "00000001",
		ClientID:      s.testClient.ID,
		Kind:          models.AccountKindSavings,
		Category:      models.AccountCategoryPerson,
	}
	s.NoError(s.repo.CreateWithOpeningMovement(first, decimal.Zero))

	second := &models.Account{
		AccountNumber: "00000001",
		ClientID:      s.testClient.ID,
		Kind:          models.AccountKindChecking,
		Category:      models.AccountCategoryPerson,
	}
	err := s.repo.CreateWithOpeningMovement(second, decimal.Zero)
	s.ErrorIs(err, ErrAccountNumberExists)
}

func (s *AccountRepositorySuite) TestCreateWithOpeningMovement_DuplicateKindAndCategory() {
	first := &models.Account{
		AccountNumber: "00000001",
		ClientID:      s.testClient.ID,
		Kind:          models.AccountKindSavings,
		Category:      models.AccountCategoryPerson,
	}
	s.NoError(s.repo.CreateWithOpeningMovement(first, decimal.Zero))

	// A fresh number does not help: the slot is taken at the database level
	second := &models.Account{
		AccountNumber: "00000002",
		ClientID:      s.testClient.ID,
		Kind:          models.AccountKindSavings,
		Category:      models.AccountCategoryPerson,
	}
	err := s.repo.CreateWithOpeningMovement(second, decimal.Zero)
	s.ErrorIs(err, ErrAccountExistsForClient)

	var count int64
	s.NoError(s.db.Model(&models.Account{}).Where("client_id = ?", s.testClient.ID).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *AccountRepositorySuite) TestExistsForClient() {
	database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.Zero)

	exists, err := s.repo.ExistsForClient(s.testClient.ID, models.AccountKindSavings, models.AccountCategoryPerson)
	s.NoError(err)
	s.True(exists)

	// Same kind, different category is a different slot
	exists, err = s.repo.ExistsForClient(s.testClient.ID, models.AccountKindSavings, models.AccountCategoryBusiness)
	s.NoError(err)
	s.False(exists)

	exists, err = s.repo.ExistsForClient(s.testClient.ID, models.AccountKindChecking, models.AccountCategoryPerson)
	s.NoError(err)
	s.False(exists)
}

func (s *AccountRepositorySuite) TestDeposit() {
	account := database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(100.00))

	movement, err := s.repo.Deposit(account.ID, decimal.NewFromFloat(250.00), "Cash deposit")
	s.NoError(err)
	s.True(movement.Amount.Equal(decimal.NewFromFloat(250.00)))

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(350.00)))
}

func (s *AccountRepositorySuite) TestWithdraw() {
	account := database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(500.00))

	movement, err := s.repo.Withdraw(account.ID, decimal.NewFromFloat(200.00), "Cash withdrawal")
	s.NoError(err)
	s.True(movement.Amount.Equal(decimal.NewFromFloat(-200.00)))

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(300.00)))
}

func (s *AccountRepositorySuite) TestWithdraw_InsufficientFunds() {
	account := database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(500.00))

	_, err := s.repo.Withdraw(account.ID, decimal.NewFromFloat(600.00), "Cash withdrawal")
	s.ErrorIs(err, ErrInsufficientFunds)

	// Balance untouched, no withdrawal recorded
	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(500.00)))

	var count int64
	s.NoError(s.db.Model(&models.Movement{}).
		Where("account_id = ? AND kind = ?", account.ID, models.MovementKindWithdrawal).
		Count(&count).Error)
	s.Zero(count)
}

func (s *AccountRepositorySuite) TestWithdraw_CheckingUsesOverdraft() {
	account := database.CreateTestCheckingAccount(s.T(), s.db, s.testClient, "00000001",
		decimal.NewFromFloat(100.00), decimal.NewFromFloat(1000.00))

	_, err := s.repo.Withdraw(account.ID, decimal.NewFromFloat(1100.00), "Overdraft withdrawal")
	s.NoError(err)

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(-1000.00)))

	_, err = s.repo.Withdraw(account.ID, decimal.NewFromFloat(0.01), "Past the line")
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *AccountRepositorySuite) TestTransfer() {
	source := database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(500.00))
	other := database.CreateTestClient(s.T(), s.db, "333444")
	destination := database.CreateTestSavingsAccount(s.T(), s.db, other, "00000002", decimal.NewFromFloat(100.00))

	sent, received, err := s.repo.Transfer("00000001", "00000002", decimal.NewFromFloat(200.00), decimal.NewFromFloat(50.00))
	s.NoError(err)

	// Source pays amount plus fee, destination receives amount only
	s.True(sent.Amount.Equal(decimal.NewFromFloat(-250.00)))
	s.True(received.Amount.Equal(decimal.NewFromFloat(200.00)))
	s.Equal("00000001", sent.OriginNumber)
	s.Equal("00000002", sent.DestinationNumber)
	s.Equal(models.MovementKindTransferSent, sent.Kind)
	s.Equal(models.MovementKindTransferReceived, received.Kind)

	sourceAfter, err := s.repo.GetByID(source.ID)
	s.NoError(err)
	s.True(sourceAfter.Balance.Equal(decimal.NewFromFloat(250.00)))

	destinationAfter, err := s.repo.GetByID(destination.ID)
	s.NoError(err)
	s.True(destinationAfter.Balance.Equal(decimal.NewFromFloat(300.00)))

	// Each account's balance still equals the sum of its movements
	s.True(s.movementSum(source.ID).Equal(sourceAfter.Balance))
	s.True(s.movementSum(destination.ID).Equal(destinationAfter.Balance))
}

func (s *AccountRepositorySuite) TestTransfer_FeeLeavesTheBank() {
	database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(500.00))
	other := database.CreateTestClient(s.T(), s.db, "333444")
	database.CreateTestSavingsAccount(s.T(), s.db, other, "00000002", decimal.NewFromFloat(100.00))

	before, err := s.repo.SumBalances()
	s.NoError(err)

	_, _, err = s.repo.Transfer("00000001", "00000002", decimal.NewFromFloat(200.00), decimal.NewFromFloat(50.00))
	s.NoError(err)

	after, err := s.repo.SumBalances()
	s.NoError(err)
	s.True(before.Sub(after).Equal(decimal.NewFromFloat(50.00)))
}

func (s *AccountRepositorySuite) TestTransfer_InsufficientFundsForAmountPlusFee() {
	source := database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(220.00))
	other := database.CreateTestClient(s.T(), s.db, "333444")
	destination := database.CreateTestSavingsAccount(s.T(), s.db, other, "00000002", decimal.NewFromFloat(100.00))

	// 200 fits, but 200 + 50 fee does not
	_, _, err := s.repo.Transfer("00000001", "00000002", decimal.NewFromFloat(200.00), decimal.NewFromFloat(50.00))
	s.ErrorIs(err, ErrInsufficientFunds)

	sourceAfter, _ := s.repo.GetByID(source.ID)
	destinationAfter, _ := s.repo.GetByID(destination.ID)
	s.True(sourceAfter.Balance.Equal(decimal.NewFromFloat(220.00)))
	s.True(destinationAfter.Balance.Equal(decimal.NewFromFloat(100.00)))

	var count int64
	s.NoError(s.db.Model(&models.Movement{}).
		Where("kind IN ?", []string{models.MovementKindTransferSent, models.MovementKindTransferReceived}).
		Count(&count).Error)
	s.Zero(count)
}

func (s *AccountRepositorySuite) TestTransfer_SameAccount() {
	database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(500.00))

	_, _, err := s.repo.Transfer("00000001", "00000001", decimal.NewFromFloat(100.00), decimal.NewFromFloat(50.00))
	s.ErrorIs(err, ErrSameAccount)
}

func (s *AccountRepositorySuite) TestTransfer_AccountNotFound() {
	database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(500.00))

	_, _, err := s.repo.Transfer("00000001", "99999999", decimal.NewFromFloat(100.00), decimal.NewFromFloat(50.00))
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestApplyMaintenanceFee() {
	account := database.CreateTestCheckingAccount(s.T(), s.db, s.testClient, "00000001",
		decimal.NewFromFloat(500.00), decimal.NewFromFloat(1000.00))

	movement, err := s.repo.ApplyMaintenanceFee(account.ID)
	s.NoError(err)
	s.NotNil(movement)
	s.Equal(models.MovementKindMaintenanceFee, movement.Kind)
	s.True(movement.Amount.Equal(decimal.NewFromFloat(-100.00)))

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(400.00)))
	s.True(s.movementSum(account.ID).Equal(reloaded.Balance))
}

func (s *AccountRepositorySuite) TestApplyMaintenanceFee_BusinessDiscount() {
	account := &models.Account{
		AccountNumber:   "00000001",
		ClientID:        s.testClient.ID,
		Kind:            models.AccountKindChecking,
		Category:        models.AccountCategoryBusiness,
		Balance:         decimal.NewFromFloat(500.00),
		OverdraftLimit:  decimal.NewFromFloat(1000.00),
		MaintenanceCost: decimal.NewFromFloat(100.00),
	}
	s.NoError(s.db.Create(account).Error)

	movement, err := s.repo.ApplyMaintenanceFee(account.ID)
	s.NoError(err)
	s.True(movement.Amount.Equal(decimal.NewFromFloat(-90.00)))

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(410.00)))
}

func (s *AccountRepositorySuite) TestApplyMaintenanceFee_MayExceedOverdraft() {
	account := database.CreateTestCheckingAccount(s.T(), s.db, s.testClient, "00000001",
		decimal.NewFromFloat(-950.00), decimal.NewFromFloat(1000.00))

	movement, err := s.repo.ApplyMaintenanceFee(account.ID)
	s.NoError(err)
	s.NotNil(movement)

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(-1050.00)))
}

func (s *AccountRepositorySuite) TestSearch() {
	database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.Zero)

	other := database.CreateTestClient(s.T(), s.db, "999888")
	database.CreateTestSavingsAccount(s.T(), s.db, other, "00000002", decimal.Zero)

	byNumber, err := s.repo.Search("00000001")
	s.NoError(err)
	s.Len(byNumber, 1)

	byNationalID, err := s.repo.Search("999888")
	s.NoError(err)
	s.Len(byNationalID, 1)
	s.Equal("00000002", byNationalID[0].AccountNumber)

	bySurname, err := s.repo.Search("Client")
	s.NoError(err)
	s.Len(bySurname, 2)
}

func (s *AccountRepositorySuite) TestSumBalances() {
	database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(800.00))
	database.CreateTestCheckingAccount(s.T(), s.db, s.testClient, "00000002",
		decimal.NewFromFloat(-300.00), decimal.NewFromFloat(1000.00))

	total, err := s.repo.SumBalances()
	s.NoError(err)
	s.True(total.Equal(decimal.NewFromFloat(500.00)))
}

func (s *AccountRepositorySuite) TestSumBalances_Empty() {
	total, err := s.repo.SumBalances()
	s.NoError(err)
	s.True(total.IsZero())
}

func (s *AccountRepositorySuite) TestExportRows() {
	database.CreateTestSavingsAccount(s.T(), s.db, s.testClient, "00000001", decimal.NewFromFloat(100.00))
	database.CreateTestCheckingAccount(s.T(), s.db, s.testClient, "00000002",
		decimal.NewFromFloat(200.00), decimal.NewFromFloat(1000.00))

	rows, err := s.repo.ExportRows()
	s.NoError(err)
	s.Len(rows, 2)
	s.Equal("00000001", rows[0].AccountNumber)
	s.Equal(s.testClient.NationalID, rows[0].NationalID)
	s.Equal(s.testClient.LastName, rows[0].LastName)
	s.True(rows[0].ClientActive)
}
