package converter

import (
	"strconv"
	"strings"
	"time"

	"patient-sheets/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// SheetDateLayout is the canonical cell encoding for dates: month/day/year, no padding.
const SheetDateLayout = "1/2/2006"

// Layouts accepted when reading a date cell, canonical first.
var sheetDateInputLayouts = []string{
	SheetDateLayout,
	"2006-01-02",
	time.RFC3339,
}

// EncodeRow produces the fixed-order cells of rec for table.
func EncodeRow(table entity.Table, rec entity.PatientRecord) entity.Row {
	switch table {
	case entity.TablePatient:
		return entity.Row{
			entity.PatientColID:          rec.PatientID,
			entity.PatientColFirstName:   rec.FirstName,
			entity.PatientColLastName:    rec.LastName,
			entity.PatientColLocation:    rec.Location,
			entity.PatientColPhone:       rec.Phone,
			entity.PatientColAddress:     rec.Address,
			entity.PatientColAge:         FormatAge(rec.Age),
			entity.PatientColGender:      string(rec.Gender),
			entity.PatientColPhysicianID: rec.Physician.PhysicianID,
			entity.PatientColEmail:       rec.Email,
		}
	case entity.TablePhysician:
		return entity.Row{
			entity.PhysicianColID:        rec.Physician.PhysicianID,
			entity.PhysicianColFirstName: rec.Physician.FirstName,
			entity.PhysicianColLastName:  rec.Physician.LastName,
			entity.PhysicianColPhone:     rec.Physician.Phone,
		}
	case entity.TableAppointment:
		return entity.Row{
			entity.AppointmentColID:          rec.Visit.AppointmentID,
			entity.AppointmentColPatientID:   rec.PatientID,
			entity.AppointmentColPhysicianID: rec.Physician.PhysicianID,
			entity.AppointmentColVisitDate:   FormatDate(rec.Visit.VisitDate),
			entity.AppointmentColNextVisit:   FormatDate(rec.Visit.NextVisit),
			entity.AppointmentColBill:        FormatBill(rec.Visit.Bill),
		}
	case entity.TablePrescription:
		return entity.Row{
			entity.PrescriptionColPhysicianID: rec.Physician.PhysicianID,
			entity.PrescriptionColPatientID:   rec.PatientID,
			entity.PrescriptionColDrug:        rec.Prescription.Drug,
			entity.PrescriptionColDose:        rec.Prescription.Dose,
			entity.PrescriptionColBill:        FormatBill(rec.Visit.Bill),
		}
	default:
		return nil
	}
}

// DecodeRow fills the fields of a record that table stores. Missing cells read
// as empty and malformed values as absent; it never fails.
func DecodeRow(table entity.Table, row entity.Row) entity.PatientRecord {
	var rec entity.PatientRecord

	switch table {
	case entity.TablePatient:
		rec.PatientID = row.Cell(entity.PatientColID)
		rec.FirstName = row.Cell(entity.PatientColFirstName)
		rec.LastName = row.Cell(entity.PatientColLastName)
		rec.Location = row.Cell(entity.PatientColLocation)
		rec.Phone = row.Cell(entity.PatientColPhone)
		rec.Address = row.Cell(entity.PatientColAddress)
		rec.Age = ParseAge(row.Cell(entity.PatientColAge))
		rec.Gender = entity.ParseGender(row.Cell(entity.PatientColGender))
		rec.Physician.PhysicianID = row.Cell(entity.PatientColPhysicianID)
		rec.Email = row.Cell(entity.PatientColEmail)
	case entity.TablePhysician:
		rec.Physician = decodePhysician(row)
	case entity.TableAppointment:
		rec.Visit = decodeVisit(row)
		rec.PatientID = row.Cell(entity.AppointmentColPatientID)
		rec.Physician.PhysicianID = row.Cell(entity.AppointmentColPhysicianID)
	case entity.TablePrescription:
		rec.Physician.PhysicianID = row.Cell(entity.PrescriptionColPhysicianID)
		rec.PatientID = row.Cell(entity.PrescriptionColPatientID)
		rec.Prescription = decodePrescription(row)
		rec.Visit.Bill = ParseBill(row.Cell(entity.PrescriptionColBill))
	}

	return rec
}

func decodePhysician(row entity.Row) entity.PhysicianInfo {
	return entity.PhysicianInfo{
		PhysicianID: row.Cell(entity.PhysicianColID),
		FirstName:   row.Cell(entity.PhysicianColFirstName),
		LastName:    row.Cell(entity.PhysicianColLastName),
		Phone:       row.Cell(entity.PhysicianColPhone),
	}
}

func decodeVisit(row entity.Row) entity.VisitInfo {
	return entity.VisitInfo{
		AppointmentID: row.Cell(entity.AppointmentColID),
		VisitDate:     ParseDate(row.Cell(entity.AppointmentColVisitDate)),
		NextVisit:     ParseDate(row.Cell(entity.AppointmentColNextVisit)),
		Bill:          ParseBill(row.Cell(entity.AppointmentColBill)),
	}
}

func decodePrescription(row entity.Row) entity.PrescriptionInfo {
	return entity.PrescriptionInfo{
		Drug: row.Cell(entity.PrescriptionColDrug),
		Dose: row.Cell(entity.PrescriptionColDose),
	}
}

// FormatDate renders t as M/D/YYYY, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(SheetDateLayout)
}

// ParseDate returns the zero time for empty or unparsable input.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range sheetDateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.CalendarDate(t)
		}
	}
	return time.Time{}
}

func FormatAge(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}

// ParseAge returns nil for empty or non-integer input.
func ParseAge(s string) *int {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &age
}

func FormatBill(bill decimal.NullDecimal) string {
	if !bill.Valid {
		return ""
	}
	return bill.Decimal.String()
}

// ParseBill returns an invalid NullDecimal for empty or non-numeric input.
func ParseBill(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
