package usecase

import (
	"context"
	"errors"

	"patient-sheets/internal/converter"
	"patient-sheets/internal/delivery/dto"
	"patient-sheets/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
	ErrAuditDisabled    = errors.New("audit trail is not configured")
)

// AuditLogUsecase serves the audit trail of one spreadsheet. Rows written for
// any other spreadsheet are reported as not found.
type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, spreadsheetID string) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, spreadsheetID string, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

// NewAuditLogUsecase serves the audit trail from db. A nil db reports ErrAuditDisabled.
func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, spreadsheetID string) (*dto.AuditLogListResponse, error) {
	if u.db == nil {
		return nil, ErrAuditDisabled
	}
	if spreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}

	logs, err := u.auditLogRepo.FindAll(ctx, u.db, spreadsheetID)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, spreadsheetID string, id int64) (*dto.AuditLogResponse, error) {
	if u.db == nil {
		return nil, ErrAuditDisabled
	}
	if spreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}

	auditLog, err := u.auditLogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil || auditLog.SpreadsheetID != spreadsheetID {
		u.log.Warnf("Failed to find audit log: %+v", ErrAuditLogNotFound)
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
