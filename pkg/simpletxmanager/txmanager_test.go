package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDriver минимальный драйвер: умеет только начинать и завершать
// транзакции - ровно та поверхность, которой пользуется менеджер
type memDriver struct{}

func (memDriver) Open(string) (driver.Conn, error) { return memConn{}, nil }

type memConn struct{}

func (memConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (memConn) Close() error                        { return nil }
func (memConn) Begin() (driver.Tx, error)           { return memTx{}, nil }

func (memConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return memTx{}, nil
}

type memTx struct{}

func (memTx) Commit() error   { return nil }
func (memTx) Rollback() error { return nil }

func init() {
	sql.Register("memdb", memDriver{})
}

func openMemDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("memdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// wrappedSerializationFailure конфликт сериализации, обёрнутый так, как его
// оборачивают репозиторий и use case по пути к менеджеру транзакций
func wrappedSerializationFailure() error {
	cause := &pq.Error{Code: "40001"}
	repoErr := fmt.Errorf("%w: Create - execute insert: %w",
		errors.New("booking.repository: failed to execute query"), cause)
	return fmt.Errorf("%w: failed to create booking: %w",
		errors.New("create_booking: storage failure"), repoErr)
}

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	m := NewTransactionManager(openMemDB(t))

	// Первые две попытки завершаются конфликтом сериализации внутри тела
	// транзакции (не на COMMIT), третья проходит
	attempts := 0
	err := m.DoSerializable(context.Background(), func(_ context.Context) error {
		attempts++
		if attempts < 3 {
			return wrappedSerializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	m := NewTransactionManager(openMemDB(t))

	attempts := 0
	err := m.DoSerializable(context.Background(), func(_ context.Context) error {
		attempts++
		return wrappedSerializationFailure()
	})

	require.Error(t, err)
	assert.True(t, isSerializationFailure(err))
	assert.Equal(t, maxSerializableRetries, attempts)
}

func TestDoSerializable_NonRetryableErrorReturnedImmediately(t *testing.T) {
	m := NewTransactionManager(openMemDB(t))

	boom := errors.New("constraint violation")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(_ context.Context) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestIsSerializationFailure(t *testing.T) {
	raw := &pq.Error{Code: "40001"}
	assert.True(t, isSerializationFailure(raw))
	assert.True(t, isSerializationFailure(wrappedSerializationFailure()))

	assert.False(t, isSerializationFailure(nil))
	assert.False(t, isSerializationFailure(errors.New("plain error")))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
}
