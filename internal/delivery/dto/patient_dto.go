package dto

// Dates travel as YYYY-MM-DD; bills as decimal strings.

type PhysicianDTO struct {
	PhysicianID string `json:"physician_id" validate:"omitempty,max=64"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
}

type VisitDTO struct {
	AppointmentID string `json:"appointment_id" validate:"omitempty,max=64"`
	VisitDate     string `json:"visit_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NextVisit     string `json:"next_visit,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Bill          string `json:"bill,omitempty" validate:"omitempty,numeric"`
}

type PrescriptionDTO struct {
	Drug string `json:"drug"`
	Dose string `json:"dose"`
}

// Request DTOs

// PatientRequest is the body of both the add and the edit submit.
type PatientRequest struct {
	PatientID    string          `json:"patient_id" validate:"omitempty,max=64"`
	FirstName    string          `json:"first_name" validate:"required"`
	LastName     string          `json:"last_name" validate:"required"`
	Location     string          `json:"location"`
	Phone        string          `json:"phone" validate:"required"`
	Address      string          `json:"address"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Age          *int            `json:"age" validate:"omitempty,gte=0,lte=120"`
	Gender       string          `json:"gender" validate:"omitempty,oneof=Male Female Other male female other"`
	Physician    PhysicianDTO    `json:"physician"`
	Visit        VisitDTO        `json:"visit"`
	Prescription PrescriptionDTO `json:"prescription"`
}

// Response DTOs

type PatientResponse struct {
	PatientID    string          `json:"patient_id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Location     string          `json:"location"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Email        string          `json:"email"`
	Age          *int            `json:"age"`
	Gender       string          `json:"gender"`
	Physician    PhysicianDTO    `json:"physician"`
	Visit        VisitDTO        `json:"visit"`
	Prescription PrescriptionDTO `json:"prescription"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
	Query    string            `json:"query,omitempty"`
}

type SubmitPatientResponse struct {
	Patient       PatientResponse `json:"patient"`
	TablesWritten []string        `json:"tables_written"`
	NextDraft     PatientResponse `json:"next_draft"`
}
