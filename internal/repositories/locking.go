package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withRowLock makes the next query take an exclusive row lock (SELECT ...
// FOR UPDATE) held until the surrounding transaction commits. SQLite has no
// FOR UPDATE syntax; its single-writer model already serializes writing
// transactions, so the clause is skipped there.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
