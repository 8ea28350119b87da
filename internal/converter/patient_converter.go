package converter

import (
	"strings"
	"time"

	"patient-sheets/internal/delivery/dto"
	"patient-sheets/internal/domain/entity"
)

// apiDateLayout is the date encoding used on the HTTP surface.
const apiDateLayout = "2006-01-02"

// PatientRequestToRecord converts a PatientRequest DTO to a PatientRecord entity.
// Dates and bill are expected to be validated already; malformed values read as absent.
func PatientRequestToRecord(req *dto.PatientRequest) entity.PatientRecord {
	if req == nil {
		return entity.PatientRecord{}
	}

	return entity.PatientRecord{
		PatientID: strings.TrimSpace(req.PatientID),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Location:  req.Location,
		Phone:     req.Phone,
		Address:   req.Address,
		Email:     req.Email,
		Age:       req.Age,
		Gender:    entity.ParseGender(req.Gender),
		Physician: entity.PhysicianInfo{
			PhysicianID: strings.TrimSpace(req.Physician.PhysicianID),
			FirstName:   req.Physician.FirstName,
			LastName:    req.Physician.LastName,
			Phone:       req.Physician.Phone,
		},
		Visit: entity.VisitInfo{
			AppointmentID: strings.TrimSpace(req.Visit.AppointmentID),
			VisitDate:     ParseDate(req.Visit.VisitDate),
			NextVisit:     ParseDate(req.Visit.NextVisit),
			Bill:          ParseBill(req.Visit.Bill),
		},
		Prescription: entity.PrescriptionInfo{
			Drug: req.Prescription.Drug,
			Dose: req.Prescription.Dose,
		},
	}
}

// PatientRecordToResponse converts a PatientRecord entity to PatientResponse DTO
func PatientRecordToResponse(rec entity.PatientRecord) dto.PatientResponse {
	return dto.PatientResponse{
		PatientID: rec.PatientID,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Location:  rec.Location,
		Phone:     rec.Phone,
		Address:   rec.Address,
		Email:     rec.Email,
		Age:       rec.Age,
		Gender:    string(rec.Gender),
		Physician: dto.PhysicianDTO{
			PhysicianID: rec.Physician.PhysicianID,
			FirstName:   rec.Physician.FirstName,
			LastName:    rec.Physician.LastName,
			Phone:       rec.Physician.Phone,
		},
		Visit: dto.VisitDTO{
			AppointmentID: rec.Visit.AppointmentID,
			VisitDate:     formatAPIDate(rec.Visit.VisitDate),
			NextVisit:     formatAPIDate(rec.Visit.NextVisit),
			Bill:          FormatBill(rec.Visit.Bill),
		},
		Prescription: dto.PrescriptionDTO{
			Drug: rec.Prescription.Drug,
			Dose: rec.Prescription.Dose,
		},
	}
}

// PatientRecordsToResponses converts a slice of PatientRecord entities to slice of PatientResponse DTOs
func PatientRecordsToResponses(recs []entity.PatientRecord) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(recs))
	for i, rec := range recs {
		responses[i] = PatientRecordToResponse(rec)
	}
	return responses
}

// TablesToNames converts written tables to their sheet names
func TablesToNames(tables []entity.Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.String()
	}
	return names
}

func formatAPIDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(apiDateLayout)
}
