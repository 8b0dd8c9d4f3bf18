package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/turnate/booking-engine/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается, если не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается, если не удалось закоммитить транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization возвращается при конфликте сериализуемых транзакций (SQLSTATE 40001)
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// pgSerializationFailure код ошибки PostgreSQL could_not_serialize_access
const pgSerializationFailure = "40001"

// TxBeginner источник транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции, переданной через контекст
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в транзакции с уровнем SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенные вызовы переиспользуют внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}

// IsSerializationFailure проверяет, что ошибка вызвана конфликтом сериализации
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgSerializationFailure
	}
	return false
}
