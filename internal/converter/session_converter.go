package converter

import (
	"patient-sheets/internal/delivery/dto"
	"patient-sheets/internal/domain/entity"
)

// SessionToResponse converts a Session entity to SessionResponse DTO
func SessionToResponse(s *entity.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}

	resp := &dto.SessionResponse{
		ID:              s.ID,
		SpreadsheetID:   s.SpreadsheetID,
		SpreadsheetName: s.SpreadsheetName,
		Draft:           PatientRecordToResponse(s.Draft),
		CreatedAt:       s.CreatedAt,
	}
	if s.EditSnapshot != nil {
		resp.EditingPatientID = s.EditSnapshot.PatientID
	}
	return resp
}
