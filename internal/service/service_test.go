package service

import (
	"context"

	"patient-sheets/internal/domain/entity"
)

// fakeSheetRepository serves fixed tables and records nothing.
type fakeSheetRepository struct {
	tables map[entity.Table][]entity.Row
	reads  int
	err    error
}

func (f *fakeSheetRepository) Read(ctx context.Context, conn entity.Connection, table entity.Table) ([]entity.Row, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.tables[table], nil
}

func (f *fakeSheetRepository) Append(ctx context.Context, conn entity.Connection, table entity.Table, row entity.Row) error {
	return nil
}

func (f *fakeSheetRepository) Update(ctx context.Context, conn entity.Connection, table entity.Table, rowNumber int, row entity.Row) error {
	return nil
}
