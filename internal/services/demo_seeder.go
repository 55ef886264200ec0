package services

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// DemoSeeder populates a development database with fake clients, accounts
// and a plausible movement history. It goes through the regular services so
// the seeded data obeys every ledger rule, account numbers included.
type DemoSeeder struct {
	clients ClientServiceInterface
	ledger  LedgerServiceInterface
	faker   *gofakeit.Faker
	rng     *rand.Rand
	logger  *slog.Logger
}

// NewDemoSeeder creates a demo data seeder
func NewDemoSeeder(clients ClientServiceInterface, ledger LedgerServiceInterface, logger *slog.Logger) *DemoSeeder {
	seed := time.Now().UnixNano()
	return &DemoSeeder{
		clients: clients,
		ledger:  ledger,
		faker:   gofakeit.New(uint64(seed)),
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
	}
}

// Seed creates clientCount clients, each with one or two accounts, and a few
// random deposits and withdrawals per account. Safe to call repeatedly; the
// random national IDs make collisions unlikely, and a collision just reuses
// the existing client.
func (s *DemoSeeder) Seed(clientCount int) error {
	var numbers []string

	for i := 0; i < clientCount; i++ {
		nationalID := fmt.Sprintf("%08d", s.rng.Intn(100000000))
		client, created, err := s.clients.CreateOrFetch(
			s.faker.FirstName(),
			s.faker.LastName(),
			nationalID,
			s.faker.Email(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed client: %w", err)
		}
		if !created {
			continue
		}

		category := "person"
		if s.rng.Intn(5) == 0 {
			category = "business"
		}

		opening := decimal.NewFromInt(int64(s.rng.Intn(9000) + 1000))
		savings, err := s.ledger.OpenAccount(client.ID, "savings", category, opening)
		if err != nil {
			return fmt.Errorf("failed to seed savings account: %w", err)
		}
		numbers = append(numbers, savings.AccountNumber)

		if s.rng.Intn(2) == 0 {
			checking, err := s.ledger.OpenAccount(client.ID, "checking", category, decimal.NewFromInt(int64(s.rng.Intn(5000))))
			if err != nil {
				return fmt.Errorf("failed to seed checking account: %w", err)
			}
			numbers = append(numbers, checking.AccountNumber)
		}
	}

	for _, number := range numbers {
		for j := 0; j < s.rng.Intn(4)+1; j++ {
			amount := decimal.NewFromInt(int64(s.rng.Intn(900) + 100))
			if s.rng.Intn(3) == 0 {
				if _, err := s.ledger.Withdraw(number, amount, s.faker.ProductName()); err != nil {
					continue
				}
			} else {
				if _, err := s.ledger.Deposit(number, amount, s.faker.Company()); err != nil {
					return fmt.Errorf("failed to seed deposit: %w", err)
				}
			}
		}
	}

	for i := 0; i+1 < len(numbers) && i < 10; i += 2 {
		if _, _, err := s.ledger.Transfer(numbers[i], numbers[i+1], decimal.NewFromInt(int64(s.rng.Intn(200)+50))); err != nil {
			s.logger.Debug("seed transfer skipped", "from", numbers[i], "error", err)
		}
	}

	s.logger.Info("demo data seeded", "clients", clientCount, "accounts", len(numbers))
	return nil
}
