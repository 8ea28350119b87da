package dto

import (
	"patient-sheets/internal/domain/entity"
	"time"
)

// Response DTOs

type AuditLogResponse struct {
	ID            int64       `json:"id"`
	SessionID     string      `json:"session_id,omitempty"`
	SpreadsheetID string      `json:"spreadsheet_id"`
	Action        string      `json:"action"`
	Sheet         string      `json:"sheet"`
	RowNumber     int         `json:"row_number,omitempty"`
	RecordID      string      `json:"record_id"`
	Metadata      entity.JSON `json:"metadata"`
	CreatedAt     time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
