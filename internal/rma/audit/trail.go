// Package audit keeps a Postgres trail of issued RMAs alongside the
// workbook. The workbook stays the record of truth; the trail exists for
// reporting and reconciliation.
package audit

import (
	"context"

	"rma-desk/internal/common/database"
	stderrors "rma-desk/internal/common/errors"
	"rma-desk/internal/common/logger"
	"rma-desk/internal/rma"
)

const insertIssued = `
	INSERT INTO rma_audit (rma_number, email, company, product, serial_number, request_id, issued_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

type Trail struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func NewTrail(db *database.PostgresClient, log logger.Logger) *Trail {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Trail{db: db, logger: log}
}

// RecordIssued inserts one row per issued RMA.
func (t *Trail) RecordIssued(ctx context.Context, issued *rma.Issued, requestID string) error {
	_, err := t.db.Exec(ctx, insertIssued,
		issued.Number,
		issued.Contact.Email,
		issued.Contact.Company,
		issued.Request.Product,
		issued.Request.SerialNumber,
		requestID,
		issued.IssuedAt,
	)
	if err != nil {
		return stderrors.NewAuditWriteFailedError(err)
	}

	t.logger.Debug("Audit row written", map[string]interface{}{
		"number":    issued.Number,
		"requestId": requestID,
	})
	return nil
}
