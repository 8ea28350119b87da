package service

import (
	"context"

	"patient-sheets/internal/domain/entity"
	"patient-sheets/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogAppend(ctx context.Context, sessionID string, conn entity.Connection, table entity.Table, recordID string, row entity.Row) error
	LogUpdate(ctx context.Context, sessionID string, conn entity.Connection, table entity.Table, rowNumber int, recordID string, row entity.Row) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

// NewAuditService records sheet writes in db. A nil db disables the audit trail.
func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogAppend logs a row appended to table
func (s *auditService) LogAppend(ctx context.Context, sessionID string, conn entity.Connection, table entity.Table, recordID string, row entity.Row) error {
	return s.create(ctx, &entity.AuditLog{
		SessionID:     sessionID,
		SpreadsheetID: conn.SpreadsheetID,
		Action:        entity.AuditActionRowAppend,
		Sheet:         table.String(),
		RecordID:      recordID,
		Metadata:      entity.JSON{"cells": []string(row)},
	})
}

// LogUpdate logs a row overwritten in place
func (s *auditService) LogUpdate(ctx context.Context, sessionID string, conn entity.Connection, table entity.Table, rowNumber int, recordID string, row entity.Row) error {
	return s.create(ctx, &entity.AuditLog{
		SessionID:     sessionID,
		SpreadsheetID: conn.SpreadsheetID,
		Action:        entity.AuditActionRowUpdate,
		Sheet:         table.String(),
		RowNumber:     rowNumber,
		RecordID:      recordID,
		Metadata:      entity.JSON{"cells": []string(row)},
	})
}

func (s *auditService) create(ctx context.Context, auditLog *entity.AuditLog) error {
	if s.db == nil {
		return nil
	}

	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
