package database

import (
	"fmt"
	"testing"

	"retail-ledger/internal/config"
	"retail-ledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// A single connection keeps every session on the same in-memory
	// database; extra pool connections would each see their own empty one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	if err := testDB.SeedBankParameters(); err != nil {
		t.Fatalf("failed to seed bank parameters: %v", err)
	}

	return testDB
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"movements",
		"term_deposits",
		"accounts",
		"clients",
		"bank_parameters",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}

func CreateTestClient(t *testing.T, db *DB, nationalID string) *models.Client {
	t.Helper()

	client := &models.Client{
		FirstName:  "Test",
		LastName:   "Client",
		NationalID: nationalID,
		Email:      nationalID + "@example.com",
		Active:     true,
	}

	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}

	return client
}

func CreateTestSavingsAccount(t *testing.T, db *DB, client *models.Client, number string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		AccountNumber: number,
		ClientID:      client.ID,
		Kind:          models.AccountKindSavings,
		Category:      models.AccountCategoryPerson,
		Balance:       balance,
	}

	return createTestAccount(t, db, account)
}

func CreateTestCheckingAccount(t *testing.T, db *DB, client *models.Client, number string, balance, overdraft decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		AccountNumber:   number,
		ClientID:        client.ID,
		Kind:            models.AccountKindChecking,
		Category:        models.AccountCategoryPerson,
		Balance:         balance,
		OverdraftLimit:  overdraft,
		MaintenanceCost: decimal.NewFromFloat(100.00),
	}

	return createTestAccount(t, db, account)
}

// createTestAccount inserts the account and, for a nonzero seeded balance,
// the movement that backs it, keeping the balance equal to the movement sum.
func createTestAccount(t *testing.T, db *DB, account *models.Account) *models.Account {
	t.Helper()

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	if !account.Balance.IsZero() {
		kind := models.MovementKindDeposit
		if account.Balance.IsNegative() {
			kind = models.MovementKindWithdrawal
		}
		movement := &models.Movement{
			AccountID:   account.ID,
			Amount:      account.Balance,
			Kind:        kind,
			Description: "Opening balance",
		}
		if err := db.Create(movement).Error; err != nil {
			t.Fatalf("failed to create opening movement: %v", err)
		}
	}

	return account
}
