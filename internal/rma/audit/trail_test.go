package audit

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rma-desk/internal/common/database"
	stderrors "rma-desk/internal/common/errors"
	"rma-desk/internal/common/logger"
	"rma-desk/internal/rma"
)

func newTestTrail(t *testing.T) (*Trail, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	trail := NewTrail(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	return trail, mock
}

func testIssued() *rma.Issued {
	return &rma.Issued{
		Number: 17,
		Contact: rma.Contact{
			Email:   "jane@example.com",
			Company: "Acme Corp",
		},
		Request: rma.Request{
			Product:      "Widget 3000",
			SerialNumber: "SN-0042",
		},
		IssuedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordIssued(t *testing.T) {
	trail, mock := newTestTrail(t)
	issued := testIssued()

	mock.ExpectExec(regexp.QuoteMeta(insertIssued)).
		WithArgs(17, "jane@example.com", "Acme Corp", "Widget 3000", "SN-0042", "req-1", issued.IssuedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := trail.RecordIssued(context.Background(), issued, "req-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordIssuedInsertFailure(t *testing.T) {
	trail, mock := newTestTrail(t)

	mock.ExpectExec(regexp.QuoteMeta(insertIssued)).
		WillReturnError(errors.New("connection reset"))

	err := trail.RecordIssued(context.Background(), testIssued(), "req-1")
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeAuditWriteFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}
