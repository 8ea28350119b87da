package service

import (
	"context"
	"errors"

	"patient-sheets/internal/domain/entity"
	"patient-sheets/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// ErrRowNotFound is returned when no data row carries the requested identifier.
var ErrRowNotFound = errors.New("no matching row found")

// TableReader fetches whole tables and builds identifier lookups over them.
// Row 0 of every table is the header and is never treated as data.
type TableReader struct {
	sheetRepo repository.SheetRepository
	log       *logrus.Logger
}

func NewTableReader(sheetRepo repository.SheetRepository, log *logrus.Logger) *TableReader {
	return &TableReader{
		sheetRepo: sheetRepo,
		log:       log,
	}
}

// Read returns the full table including its header row.
func (r *TableReader) Read(ctx context.Context, conn entity.Connection, table entity.Table) ([]entity.Row, error) {
	rows, err := r.sheetRepo.Read(ctx, conn, table)
	if err != nil {
		r.log.Warnf("Failed to read table %s: %+v", table, err)
		return nil, err
	}
	return rows, nil
}

// Index reads table and keys its data rows by keyColumn. See IndexRows.
func (r *TableReader) Index(ctx context.Context, conn entity.Connection, table entity.Table, keyColumn int) (map[string]entity.Row, error) {
	rows, err := r.Read(ctx, conn, table)
	if err != nil {
		return nil, err
	}
	return IndexRows(rows, keyColumn), nil
}

// Locate re-reads table and returns the 1-based sheet row number of the first
// data row whose column equals value.
func (r *TableReader) Locate(ctx context.Context, conn entity.Connection, table entity.Table, column int, value string) (int, error) {
	if value == "" {
		return 0, ErrRowNotFound
	}

	rows, err := r.Read(ctx, conn, table)
	if err != nil {
		return 0, err
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].Cell(column) == value {
			return i + 1, nil
		}
	}
	return 0, ErrRowNotFound
}

// IndexRows keys the rows after the header by keyColumn. The first occurrence
// of a key wins and later duplicates are dropped. Rows with an empty key are skipped.
func IndexRows(rows []entity.Row, keyColumn int) map[string]entity.Row {
	index := make(map[string]entity.Row)
	for i := 1; i < len(rows); i++ {
		key := rows[i].Cell(keyColumn)
		if key == "" {
			continue
		}
		if _, exists := index[key]; exists {
			continue
		}
		index[key] = rows[i]
	}
	return index
}
