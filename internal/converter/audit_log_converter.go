package converter

import (
	"patient-sheets/internal/delivery/dto"
	"patient-sheets/internal/domain/entity"
)

// AuditLogToResponse converts a AuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	resp := auditLogToResponse(*log)
	return &resp
}

// AuditLogsToResponses converts a slice of AuditLog entities to slice of AuditLogResponse DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i, log := range logs {
		responses[i] = auditLogToResponse(log)
	}
	return responses
}

func auditLogToResponse(log entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:            log.ID,
		SessionID:     log.SessionID,
		SpreadsheetID: log.SpreadsheetID,
		Action:        log.Action,
		Sheet:         log.Sheet,
		RowNumber:     log.RowNumber,
		RecordID:      log.RecordID,
		Metadata:      log.Metadata,
		CreatedAt:     log.CreatedAt,
	}
}
