package services

import (
	"testing"

	"retail-ledger/internal/database"
	"retail-ledger/internal/models"
	"retail-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerServiceSuite defines the test suite for LedgerService
type LedgerServiceSuite struct {
	suite.Suite
	db         *database.DB
	service    LedgerServiceInterface
	clients    ClientServiceInterface
	testClient *models.Client
}

// SetupTest runs before each test in the suite
func (s *LedgerServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	clientRepo := repositories.NewClientRepository(s.db.DB)
	accountRepo := repositories.NewAccountRepository(s.db.DB)
	movementRepo := repositories.NewMovementRepository(s.db.DB)
	paramRepo := repositories.NewParameterRepository(s.db.DB)

	s.clients = NewClientService(clientRepo, testLogger())
	s.service = NewLedgerService(accountRepo, movementRepo, clientRepo, paramRepo, noopMetrics{}, testLogger())

	s.testClient = database.CreateTestClient(s.T(), s.db, "111222")
}

// TearDownTest runs after each test in the suite
func (s *LedgerServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestLedgerServiceSuite runs the test suite
func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) TestOpenAccount_Savings() {
	account, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.NewFromFloat(300.00))
	s.NoError(err)
	s.Equal("00000001", account.AccountNumber)
	s.True(account.Balance.Equal(decimal.NewFromFloat(300.00)))
	s.True(account.OverdraftLimit.IsZero())
	s.True(account.MaintenanceCost.IsZero())

	// Opening balance is backed by a movement
	movements, total, err := s.service.GetMovements(account.AccountNumber, 0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Equal(models.MovementKindDeposit, movements[0].Kind)
	s.True(movements[0].Amount.Equal(decimal.NewFromFloat(300.00)))
}

func (s *LedgerServiceSuite) TestOpenAccount_CheckingGetsConfiguredDefaults() {
	account, err := s.service.OpenAccount(s.testClient.ID, "checking", "person", decimal.Zero)
	s.NoError(err)
	s.True(account.OverdraftLimit.Equal(decimal.NewFromFloat(10000.00)))
	s.True(account.MaintenanceCost.Equal(decimal.NewFromFloat(100.00)))
}

func (s *LedgerServiceSuite) TestOpenAccount_SequentialNumbers() {
	first, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.Zero)
	s.NoError(err)
	second, err := s.service.OpenAccount(s.testClient.ID, "checking", "person", decimal.Zero)
	s.NoError(err)

	s.Equal("00000001", first.AccountNumber)
	s.Equal("00000002", second.AccountNumber)
}

func (s *LedgerServiceSuite) TestOpenAccount_DuplicateKindAndCategory() {
	_, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.Zero)
	s.NoError(err)

	_, err = s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.Zero)
	s.ErrorIs(err, ErrAccountAlreadyExists)

	// A different category of the same kind is allowed
	_, err = s.service.OpenAccount(s.testClient.ID, "savings", "business", decimal.Zero)
	s.NoError(err)
}

func (s *LedgerServiceSuite) TestOpenAccount_InactiveClient() {
	s.NoError(s.clients.Deactivate(s.testClient.ID))

	_, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.Zero)
	s.ErrorIs(err, ErrClientInactive)
}

func (s *LedgerServiceSuite) TestOpenAccount_UnknownClient() {
	_, err := s.service.OpenAccount(uuid.New(), "savings", "person", decimal.Zero)
	s.ErrorIs(err, ErrClientNotFound)
}

func (s *LedgerServiceSuite) TestOpenAccount_InvalidKind() {
	_, err := s.service.OpenAccount(s.testClient.ID, "investment", "person", decimal.Zero)
	s.ErrorIs(err, ErrInvalidAccountKind)
}

func (s *LedgerServiceSuite) TestOpenAccount_NegativeOpeningBalance() {
	_, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.NewFromFloat(-1.00))
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *LedgerServiceSuite) TestDeposit() {
	account, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.Zero)
	s.NoError(err)

	movement, err := s.service.Deposit(account.AccountNumber, decimal.NewFromFloat(500.00), "")
	s.NoError(err)
	s.True(movement.Amount.Equal(decimal.NewFromFloat(500.00)))

	reloaded, err := s.service.GetAccountByNumber(account.AccountNumber)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(500.00)))
}

func (s *LedgerServiceSuite) TestDeposit_NonPositiveAmount() {
	account, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.Zero)
	s.NoError(err)

	_, err = s.service.Deposit(account.AccountNumber, decimal.Zero, "")
	s.ErrorIs(err, ErrInvalidAmount)

	_, err = s.service.Deposit(account.AccountNumber, decimal.NewFromFloat(-10.00), "")
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *LedgerServiceSuite) TestWithdraw_InsufficientFunds() {
	account, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.NewFromFloat(500.00))
	s.NoError(err)

	_, err = s.service.Withdraw(account.AccountNumber, decimal.NewFromFloat(600.00), "")
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *LedgerServiceSuite) TestTransfer_ChargesConfiguredFee() {
	source, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.NewFromFloat(500.00))
	s.NoError(err)

	other := database.CreateTestClient(s.T(), s.db, "333444")
	destination, err := s.service.OpenAccount(other.ID, "savings", "person", decimal.Zero)
	s.NoError(err)

	sent, received, err := s.service.Transfer(source.AccountNumber, destination.AccountNumber, decimal.NewFromFloat(200.00))
	s.NoError(err)
	s.True(sent.Amount.Equal(decimal.NewFromFloat(-250.00)))
	s.True(received.Amount.Equal(decimal.NewFromFloat(200.00)))

	sourceAfter, _ := s.service.GetAccountByNumber(source.AccountNumber)
	destinationAfter, _ := s.service.GetAccountByNumber(destination.AccountNumber)
	s.True(sourceAfter.Balance.Equal(decimal.NewFromFloat(250.00)))
	s.True(destinationAfter.Balance.Equal(decimal.NewFromFloat(200.00)))
}

func (s *LedgerServiceSuite) TestTransfer_SameAccount() {
	account, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.NewFromFloat(500.00))
	s.NoError(err)

	_, _, err = s.service.Transfer(account.AccountNumber, account.AccountNumber, decimal.NewFromFloat(100.00))
	s.ErrorIs(err, ErrSameAccountTransfer)
}

func (s *LedgerServiceSuite) TestApplyMaintenanceFee_SavingsRejected() {
	account, err := s.service.OpenAccount(s.testClient.ID, "savings", "person", decimal.NewFromFloat(500.00))
	s.NoError(err)

	_, err = s.service.ApplyMaintenanceFee(account.AccountNumber)
	s.ErrorIs(err, ErrNotCheckingAccount)
}

func (s *LedgerServiceSuite) TestApplyMaintenanceFee_Checking() {
	account, err := s.service.OpenAccount(s.testClient.ID, "checking", "person", decimal.NewFromFloat(500.00))
	s.NoError(err)

	movement, err := s.service.ApplyMaintenanceFee(account.AccountNumber)
	s.NoError(err)
	s.True(movement.Amount.Equal(decimal.NewFromFloat(-100.00)))

	reloaded, _ := s.service.GetAccountByNumber(account.AccountNumber)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(400.00)))
}

// TestTellerWorkflow walks one client through the counter: register, open an
// account, deposit, bounce an oversized withdrawal, then transfer with the fee
// charged to the source.
func (s *LedgerServiceSuite) TestTellerWorkflow() {
	ana, created, err := s.clients.CreateOrFetch("Ana", "Gomez", "111", "ana@example.com")
	s.NoError(err)
	s.True(created)

	account, err := s.service.OpenAccount(ana.ID, "savings", "person", decimal.Zero)
	s.NoError(err)

	_, err = s.service.Deposit(account.AccountNumber, decimal.NewFromFloat(500.00), "Initial deposit")
	s.NoError(err)

	_, err = s.service.Withdraw(account.AccountNumber, decimal.NewFromFloat(600.00), "Too much")
	s.ErrorIs(err, ErrInsufficientFunds)

	luis, _, err := s.clients.CreateOrFetch("Luis", "Paredes", "222", "")
	s.NoError(err)
	other, err := s.service.OpenAccount(luis.ID, "savings", "person", decimal.Zero)
	s.NoError(err)

	_, _, err = s.service.Transfer(account.AccountNumber, other.AccountNumber, decimal.NewFromFloat(200.00))
	s.NoError(err)

	anaAfter, _ := s.service.GetAccountByNumber(account.AccountNumber)
	luisAfter, _ := s.service.GetAccountByNumber(other.AccountNumber)
	s.True(anaAfter.Balance.Equal(decimal.NewFromFloat(250.00)))
	s.True(luisAfter.Balance.Equal(decimal.NewFromFloat(200.00)))
}
