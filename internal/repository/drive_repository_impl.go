package repository

import (
	"context"

	"patient-sheets/internal/domain/entity"
	domainRepo "patient-sheets/internal/domain/repository"
	"patient-sheets/internal/infrastructure/google"

	"google.golang.org/api/drive/v3"
)

const spreadsheetQuery = "mimeType='application/vnd.google-apps.spreadsheet'"

type driveRepository struct {
	clients *google.ClientFactory
}

func NewDriveRepository(clients *google.ClientFactory) domainRepo.DriveRepository {
	return &driveRepository{clients: clients}
}

func (r *driveRepository) ListSpreadsheets(ctx context.Context, accessToken string) ([]entity.SpreadsheetFile, error) {
	srv, err := r.clients.Drive(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	files := []entity.SpreadsheetFile{}
	err = srv.Files.List().
		Q(spreadsheetQuery).
		Fields("nextPageToken", "files(id, name)").
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				files = append(files, entity.SpreadsheetFile{ID: f.Id, Name: f.Name})
			}
			return nil
		})
	if err != nil {
		return nil, &domainRepo.RemoteError{Err: err}
	}
	return files, nil
}
