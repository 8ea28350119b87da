package service

import (
	"strings"

	"patient-sheets/internal/converter"
	"patient-sheets/internal/domain/entity"
)

// physicianMinCells is the shortest physician row admitted to the index.
const physicianMinCells = 4

// BuildPhysicianIndex keys physician rows by identifier. Rows with fewer than
// four cells, or a blank identifier, first or last name, are left out.
func BuildPhysicianIndex(rows []entity.Row) map[string]entity.Row {
	index := make(map[string]entity.Row)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < physicianMinCells {
			continue
		}
		id := row.Cell(entity.PhysicianColID)
		if id == "" || row.Cell(entity.PhysicianColFirstName) == "" || row.Cell(entity.PhysicianColLastName) == "" {
			continue
		}
		if _, exists := index[id]; exists {
			continue
		}
		index[id] = row
	}
	return index
}

// Project joins each patient row after the header with its physician,
// appointment and prescription rows. Output keeps table order. Only rows
// with no cells at all are skipped. A missing join
// leaves the corresponding fields blank. prescriptions may be nil.
func Project(patientRows []entity.Row, physicians, appointments, prescriptions map[string]entity.Row) []entity.PatientRecord {
	views := make([]entity.PatientRecord, 0, len(patientRows))
	for i := 1; i < len(patientRows); i++ {
		row := patientRows[i]
		if len(row) == 0 {
			continue
		}

		view := converter.DecodeRow(entity.TablePatient, row)

		if physicianRow, ok := physicians[view.Physician.PhysicianID]; ok {
			view.Physician = converter.DecodeRow(entity.TablePhysician, physicianRow).Physician
		}
		if appointmentRow, ok := appointments[view.PatientID]; ok {
			view.Visit = converter.DecodeRow(entity.TableAppointment, appointmentRow).Visit
		}
		if prescriptionRow, ok := prescriptions[view.PatientID]; ok {
			view.Prescription = converter.DecodeRow(entity.TablePrescription, prescriptionRow).Prescription
		}

		views = append(views, view)
	}
	return views
}

// Filter keeps the views whose first name, last name, "first last", location or
// address contain term ignoring case, or whose phone contains term verbatim.
// A blank term returns views unchanged.
func Filter(views []entity.PatientRecord, term string) []entity.PatientRecord {
	if strings.TrimSpace(term) == "" {
		return views
	}

	lower := strings.ToLower(term)
	containsFold := func(s string) bool {
		return strings.Contains(strings.ToLower(s), lower)
	}

	filtered := make([]entity.PatientRecord, 0)
	for _, v := range views {
		if containsFold(v.FirstName) ||
			containsFold(v.LastName) ||
			containsFold(v.FullName()) ||
			strings.Contains(v.Phone, term) ||
			containsFold(v.Location) ||
			containsFold(v.Address) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
