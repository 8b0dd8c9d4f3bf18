package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnate/booking-engine/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx   *fakeTx
	opts *sql.TxOptions
	err  error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.opts = opts
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestDoSerializable_Commits(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	var sawTx bool
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
}

func TestDoSerializable_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)
	boom := errors.New("boom")

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.True(t, beginner.tx.rolledBack)
	assert.False(t, beginner.tx.committed)
}

func TestDoSerializable_CommitSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40001"}}}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerialization)
}

func TestDo_BeginFailure(t *testing.T) {
	manager := NewTransactionManager(&fakeBeginner{err: errors.New("connection refused")})

	err := manager.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not be called")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(fmt.Errorf("wrapped: %w", &pq.Error{Code: "40001"})))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("plain")))
}
