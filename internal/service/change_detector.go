package service

import (
	"patient-sheets/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Changed reports whether any field that table stores differs between before
// and after. The bill copied into the prescription row is owned by the
// appointment table and does not flag a prescription change on its own.
func Changed(table entity.Table, before, after entity.PatientRecord) bool {
	switch table {
	case entity.TablePatient:
		return before.PatientID != after.PatientID ||
			before.FirstName != after.FirstName ||
			before.LastName != after.LastName ||
			before.Location != after.Location ||
			before.Phone != after.Phone ||
			before.Address != after.Address ||
			before.Email != after.Email ||
			!sameAge(before.Age, after.Age) ||
			before.Gender != after.Gender ||
			before.Physician.PhysicianID != after.Physician.PhysicianID
	case entity.TablePhysician:
		return before.Physician != after.Physician
	case entity.TableAppointment:
		return before.Visit.AppointmentID != after.Visit.AppointmentID ||
			before.PatientID != after.PatientID ||
			before.Physician.PhysicianID != after.Physician.PhysicianID ||
			!entity.SameDay(before.Visit.VisitDate, after.Visit.VisitDate) ||
			!entity.SameDay(before.Visit.NextVisit, after.Visit.NextVisit) ||
			!sameBill(before.Visit.Bill, after.Visit.Bill)
	case entity.TablePrescription:
		return before.Physician.PhysicianID != after.Physician.PhysicianID ||
			before.PatientID != after.PatientID ||
			before.Prescription != after.Prescription
	default:
		return false
	}
}

// ChangedTables returns the tables flagged by Changed, in write order.
func ChangedTables(before, after entity.PatientRecord) []entity.Table {
	var changed []entity.Table
	for _, table := range entity.Tables() {
		if Changed(table, before, after) {
			changed = append(changed, table)
		}
	}
	return changed
}

func sameAge(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameBill(a, b decimal.NullDecimal) bool {
	if !a.Valid || !b.Valid {
		return a.Valid == b.Valid
	}
	return a.Decimal.Equal(b.Decimal)
}
