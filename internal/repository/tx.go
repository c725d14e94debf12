package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TxManager runs a function inside one database transaction. The whole
// transaction lives on a single connection checked out from the pool,
// which is returned on every exit path; mixing connections mid-transaction
// would break the row-lock and commit semantics.
type TxManager interface {
	Do(fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTxManager(db *gorm.DB, log *zap.Logger) TxManager {
	return &gormTxManager{db: db, log: log}
}

// Do begins a transaction, runs fn, and commits. If fn returns an error
// or panics the transaction is rolled back; a rollback failure is logged
// but never replaces the original error.
func (m *gormTxManager) Do(fn func(tx *gorm.DB) error) error {
	tx := m.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				m.log.Error("rollback after panic failed", zap.Error(rbErr))
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			m.log.Error("transaction rollback failed",
				zap.NamedError("rollback_error", rbErr),
				zap.Error(err))
		}
		return err
	}

	return tx.Commit().Error
}
