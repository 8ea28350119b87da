package repository

import (
	"context"
	"fmt"

	"patient-sheets/internal/domain/entity"
	domainRepo "patient-sheets/internal/domain/repository"
	"patient-sheets/internal/infrastructure/google"

	"github.com/spf13/cast"
	"google.golang.org/api/sheets/v4"
)

// Cells are written verbatim so identifiers, phone numbers and dates read back unchanged.
const valueInputOption = "RAW"

type sheetRepository struct {
	clients *google.ClientFactory
}

func NewSheetRepository(clients *google.ClientFactory) domainRepo.SheetRepository {
	return &sheetRepository{clients: clients}
}

func (r *sheetRepository) Read(ctx context.Context, conn entity.Connection, table entity.Table) ([]entity.Row, error) {
	srv, err := r.clients.Sheets(ctx, conn.AccessToken)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Spreadsheets.Values.Get(conn.SpreadsheetID, table.String()).Context(ctx).Do()
	if err != nil {
		return nil, &domainRepo.RemoteError{Err: err}
	}

	rows := make([]entity.Row, len(resp.Values))
	for i, values := range resp.Values {
		row := make(entity.Row, len(values))
		for j, v := range values {
			row[j] = cast.ToString(v)
		}
		rows[i] = row
	}
	return rows, nil
}

func (r *sheetRepository) Append(ctx context.Context, conn entity.Connection, table entity.Table, row entity.Row) error {
	srv, err := r.clients.Sheets(ctx, conn.AccessToken)
	if err != nil {
		return err
	}

	_, err = srv.Spreadsheets.Values.
		Append(conn.SpreadsheetID, table.String(), toValueRange(row)).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return remoteError(err)
}

func (r *sheetRepository) Update(ctx context.Context, conn entity.Connection, table entity.Table, rowNumber int, row entity.Row) error {
	srv, err := r.clients.Sheets(ctx, conn.AccessToken)
	if err != nil {
		return err
	}

	updateRange := fmt.Sprintf("%s!A%d", table, rowNumber)
	_, err = srv.Spreadsheets.Values.
		Update(conn.SpreadsheetID, updateRange, toValueRange(row)).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return remoteError(err)
}

func remoteError(err error) error {
	if err == nil {
		return nil
	}
	return &domainRepo.RemoteError{Err: err}
}

func toValueRange(row entity.Row) *sheets.ValueRange {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	return &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{values},
	}
}
