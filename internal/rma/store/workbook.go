// Package store persists issued RMA records into the spreadsheet workbook
// acting as the register of truth.
package store

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"rma-desk/internal/common/config"
	stderrors "rma-desk/internal/common/errors"
	"rma-desk/internal/common/logger"
	"rma-desk/internal/common/metrics"
	"rma-desk/internal/rma"
	"rma-desk/internal/rma/sequence"
)

// Workbook appends issued records to a single named sheet whose first row is
// the header row. The column holding RMA numbers is located by exact header
// text match after trimming whitespace.
type Workbook struct {
	path         string
	sheet        string
	numberColumn string
	logger       logger.Logger

	// probe is the exclusive-open check run before any read or mutation.
	// Overridable in tests.
	probe func(path string) error
}

func New(cfg config.StoreConfig, log logger.Logger) *Workbook {
	return &Workbook{
		path:         cfg.Path,
		sheet:        cfg.Sheet,
		numberColumn: cfg.NumberColumn,
		logger:       log,
		probe:        appendProbe,
	}
}

// appendProbe opens the file in append mode and closes it again. When the
// file is held open by another process (a spreadsheet application, usually)
// the open fails and the caller reports STORE_LOCKED before touching the
// workbook. Advisory only: it cannot stop a second invocation that runs after
// this handle is closed.
func appendProbe(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Append scans the number column, allocates the next RMA number and writes
// the record as a new row below the last populated one, then saves the
// workbook in place. Either the save succeeds with the new row or the file
// is left unchanged.
//
// The scan-then-append is not atomic across processes; two invocations with
// non-overlapping file handles can still race. Accepted limitation under the
// single-writer deployment assumption.
func (w *Workbook) Append(contact rma.Contact, req rma.Request) (*rma.Issued, error) {
	start := time.Now()
	defer func() {
		metrics.StoreAppendDuration.Observe(time.Since(start).Seconds())
	}()

	if err := w.probe(w.path); err != nil {
		if os.IsNotExist(err) {
			return nil, stderrors.NewStoreIOError("open", err)
		}
		return nil, stderrors.NewStoreLockedError(w.path, err)
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, stderrors.NewStoreIOError("open", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(w.sheet)
	if err != nil || idx < 0 {
		return nil, stderrors.NewSheetNotFoundError(w.sheet)
	}

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return nil, stderrors.NewStoreIOError("read", err)
	}
	if len(rows) == 0 {
		return nil, stderrors.NewMissingColumnError(w.numberColumn)
	}

	header := rows[0]
	numberCol := -1
	for i, cell := range header {
		if strings.TrimSpace(cell) == w.numberColumn {
			numberCol = i
			break
		}
	}
	if numberCol == -1 {
		return nil, stderrors.NewMissingColumnError(w.numberColumn)
	}

	// Non-integer and blank cells do not participate in the allocation.
	existing := make([]int, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if numberCol >= len(row) {
			continue
		}
		if v, convErr := strconv.Atoi(strings.TrimSpace(row[numberCol])); convErr == nil {
			existing = append(existing, v)
		}
	}

	issued := &rma.Issued{
		Number:   sequence.Next(existing),
		Contact:  contact,
		Request:  req,
		IssuedAt: time.Now().UTC(),
	}

	// First row below the last populated one. Deliberately not the allocated
	// number: numbers and row positions drift apart as soon as a row is ever
	// deleted or the sheet has gaps.
	rowIdx := len(rows) + 1

	values := rowValues(issued)
	for col, headerCell := range header {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, rowIdx)
		if cellErr != nil {
			return nil, stderrors.NewStoreIOError("write", cellErr)
		}
		if col == numberCol {
			if err := f.SetCellInt(w.sheet, cell, issued.Number); err != nil {
				return nil, stderrors.NewStoreIOError("write", err)
			}
			continue
		}
		if v, ok := values[strings.TrimSpace(headerCell)]; ok && v != "" {
			if err := f.SetCellStr(w.sheet, cell, v); err != nil {
				return nil, stderrors.NewStoreIOError("write", err)
			}
		}
	}

	if err := f.Save(); err != nil {
		return nil, stderrors.NewStoreIOError("save", err)
	}

	w.logger.Info("RMA record appended", map[string]interface{}{
		"number": issued.Number,
		"row":    rowIdx,
		"path":   w.path,
		"sheet":  w.sheet,
	})

	return issued, nil
}

// rowValues maps register header names to the record's field values, so the
// written row lines up with whatever column order the header row declares.
func rowValues(rec *rma.Issued) map[string]string {
	return map[string]string{
		"Date":            rec.IssuedAt.Format("2006-01-02"),
		"Name":            rec.Contact.Name,
		"Email":           rec.Contact.Email,
		"Phone":           rec.Contact.Phone,
		"Company":         rec.Contact.Company,
		"Street":          rec.Contact.Street,
		"City":            rec.Contact.City,
		"State":           rec.Contact.State,
		"Zip":             rec.Contact.Zip,
		"Country":         rec.Contact.Country,
		"Category":        rec.Request.Category,
		"Complaint":       rec.Request.Complaint,
		"Reply":           rec.Request.Reply,
		"Condition":       rec.Request.Condition,
		"Product":         rec.Request.Product,
		"Status":          rec.Request.Status,
		"Decontamination": rec.Request.Decontamination,
		"Serial":          rec.Request.SerialNumber,
	}
}
