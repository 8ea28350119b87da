package dto

import (
	"time"

	"patient-sheets/internal/domain/entity"
)

// Request DTOs

type OpenSessionRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

type SelectSpreadsheetRequest struct {
	SpreadsheetID   string `json:"spreadsheet_id" validate:"required"`
	SpreadsheetName string `json:"spreadsheet_name"`
}

// Response DTOs

type SessionTokenResponse struct {
	SessionToken string `json:"session_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type SessionResponse struct {
	ID               string          `json:"id"`
	SpreadsheetID    string          `json:"spreadsheet_id,omitempty"`
	SpreadsheetName  string          `json:"spreadsheet_name,omitempty"`
	Draft            PatientResponse `json:"draft"`
	EditingPatientID string          `json:"editing_patient_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type SpreadsheetListResponse struct {
	Spreadsheets []entity.SpreadsheetFile `json:"spreadsheets"`
	Total        int                      `json:"total"`
}
