package dao

import (
	"context"

	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Worker{},
		&Item{},
		&Purchase{},
		&Sale{},
		&ShopFund{},
		&WorkerExpense{},
	)
}

// TxRunner starts database transactions for the orchestration layer. Every
// ledger operation runs inside exactly one of these.
type TxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{
		db: db,
	}
}

func (r *TxRunner) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
