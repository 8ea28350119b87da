package repository

import (
	"context"

	"patient-sheets/internal/domain/entity"
)

// SheetRepository is the spreadsheet persistence boundary. Every call carries
// the caller's credential and spreadsheet handle.
type SheetRepository interface {
	// Read returns every row of table including the header row. An empty table yields no rows.
	Read(ctx context.Context, conn entity.Connection, table entity.Table) ([]entity.Row, error)
	// Append writes row after the last populated row of table.
	Append(ctx context.Context, conn entity.Connection, table entity.Table, row entity.Row) error
	// Update overwrites the cells of the 1-based rowNumber in column order.
	Update(ctx context.Context, conn entity.Connection, table entity.Table, rowNumber int, row entity.Row) error
}

// DriveRepository lists the spreadsheets visible to a credential.
type DriveRepository interface {
	ListSpreadsheets(ctx context.Context, accessToken string) ([]entity.SpreadsheetFile, error)
}

// RemoteError wraps a failure reported by, or on the way to, the remote
// spreadsheet service. Its message is the remote message unchanged.
type RemoteError struct {
	Err error
}

func (e *RemoteError) Error() string {
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
