package entity

// Table names one tab of the backing spreadsheet. The names are contractual.
type Table string

const (
	TablePatient      Table = "patient"
	TablePhysician    Table = "physician"
	TableAppointment  Table = "appointment"
	TablePrescription Table = "prescribes"
)

// Tables lists every table in write order.
func Tables() []Table {
	return []Table{TablePatient, TablePhysician, TableAppointment, TablePrescription}
}

func (t Table) String() string {
	return string(t)
}

// Patient table columns.
const (
	PatientColID = iota
	PatientColFirstName
	PatientColLastName
	PatientColLocation
	PatientColPhone
	PatientColAddress
	PatientColAge
	PatientColGender
	PatientColPhysicianID
	PatientColEmail
	patientColumnCount
)

// Physician table columns.
const (
	PhysicianColID = iota
	PhysicianColFirstName
	PhysicianColLastName
	PhysicianColPhone
	physicianColumnCount
)

// Appointment table columns.
const (
	AppointmentColID = iota
	AppointmentColPatientID
	AppointmentColPhysicianID
	AppointmentColVisitDate
	AppointmentColNextVisit
	AppointmentColBill
	appointmentColumnCount
)

// Prescription table columns.
const (
	PrescriptionColPhysicianID = iota
	PrescriptionColPatientID
	PrescriptionColDrug
	PrescriptionColDose
	PrescriptionColBill
	prescriptionColumnCount
)

// ColumnCount is the number of cells written for a row of t.
func (t Table) ColumnCount() int {
	switch t {
	case TablePatient:
		return patientColumnCount
	case TablePhysician:
		return physicianColumnCount
	case TableAppointment:
		return appointmentColumnCount
	case TablePrescription:
		return prescriptionColumnCount
	default:
		return 0
	}
}

// LocatorColumn is the identifier column matched when updating an existing row of t.
func (t Table) LocatorColumn() int {
	if t == TablePrescription {
		return PrescriptionColPatientID
	}
	return 0
}

// LocatorValue returns the identifier of rec that addresses its row in t.
func (t Table) LocatorValue(rec PatientRecord) string {
	switch t {
	case TablePatient, TablePrescription:
		return rec.PatientID
	case TablePhysician:
		return rec.Physician.PhysicianID
	case TableAppointment:
		return rec.Visit.AppointmentID
	default:
		return ""
	}
}

// Row is one ordered sequence of string cells.
type Row []string

// Cell returns the cell at i, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i >= 0 && i < len(r) {
		return r[i]
	}
	return ""
}

