package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/pkg/metrics"
)

func TestOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM appointments":     "select",
		"  insert into appointments (id)": "insert",
		"UPDATE appointments SET x = 1":   "update",
		"DELETE FROM blocked_dates":       "delete",
		"WITH x AS (SELECT 1) SELECT 1":   "with",
		"VACUUM":                          "other",
	}
	for query, want := range tests {
		assert.Equal(t, want, operation(query), query)
	}
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, metrics.NewWithRegisterer("test", prometheus.NewRegistry()))

	ctx := context.Background()
	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))

	mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = GetExecutor(txCtx, db).ExecContext(txCtx, "UPDATE appointments SET status = $1", "confirmed")
	require.NoError(t, err)

	mock.ExpectCommit()
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
