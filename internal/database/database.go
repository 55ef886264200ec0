package database

import (
	"fmt"
	"log"
	"time"

	"retail-ledger/internal/config"
	"retail-ledger/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.Client{},
		&models.Account{},
		&models.Movement{},
		&models.TermDeposit{},
		&models.BankParameters{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

// SeedBankParameters inserts the default parameter row if none exists yet.
// The row is the account-number sequence, so it must exist before the first
// account is opened.
func (db *DB) SeedBankParameters() error {
	var count int64
	if err := db.DB.Model(&models.BankParameters{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check bank parameters: %w", err)
	}

	if count > 0 {
		return nil
	}

	if err := db.DB.Create(models.DefaultBankParameters()).Error; err != nil {
		return fmt.Errorf("failed to seed bank parameters: %w", err)
	}

	return nil
}

func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_clients_national_id ON clients(national_id)",
		"CREATE INDEX IF NOT EXISTS idx_clients_last_name_lower ON clients(LOWER(last_name))",
		"CREATE INDEX IF NOT EXISTS idx_accounts_account_number ON accounts(account_number)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_owner_slot ON accounts(client_id, kind, category)",
		"CREATE INDEX IF NOT EXISTS idx_movements_account_id ON movements(account_id)",
		"CREATE INDEX IF NOT EXISTS idx_movements_occurred_at ON movements(occurred_at)",
		"CREATE INDEX IF NOT EXISTS idx_movements_kind ON movements(kind)",
		"CREATE INDEX IF NOT EXISTS idx_term_deposits_account_id ON term_deposits(account_id)",
		"CREATE INDEX IF NOT EXISTS idx_term_deposits_status ON term_deposits(status)",
		"CREATE INDEX IF NOT EXISTS idx_term_deposits_maturity_date ON term_deposits(maturity_date)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Run SQL-based migrations using golang-migrate if enabled; otherwise
	// (or when the runner fails) fall back to GORM AutoMigrate.
	applied, err := RunMigrationsIfEnabled(sqlDB)
	if err != nil {
		log.Printf("Warning: migration runner failed: %v", err)
	}
	if !applied {
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	if err := db.SeedBankParameters(); err != nil {
		return nil, err
	}

	log.Println("Database initialized successfully")

	return db, nil
}
