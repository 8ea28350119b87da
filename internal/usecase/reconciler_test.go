package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"patient-sheets/internal/converter"
	"patient-sheets/internal/domain/entity"
	"patient-sheets/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConn = entity.Connection{AccessToken: "token", SpreadsheetID: "sheet-1"}

func newTestReconciler(repo *fakeSheetRepository) (*Reconciler, *fakeAuditService) {
	audit := &fakeAuditService{}
	log := quietLogger()
	return NewReconciler(log, repo, service.NewTableReader(repo, log), audit, &sequenceIDGenerator{}), audit
}

func newRecord() entity.PatientRecord {
	age := 41
	return entity.PatientRecord{
		PatientID: "PT111111",
		FirstName: "Ana",
		LastName:  "Silva",
		Location:  "Lisbon",
		Phone:     "555-0101",
		Age:       &age,
		Gender:    entity.GenderFemale,
		Physician: entity.PhysicianInfo{PhysicianID: "D1", FirstName: "Greg", LastName: "House", Phone: "555"},
		Visit: entity.VisitInfo{
			AppointmentID: "APT222222",
			VisitDate:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Bill:          decimal.NewNullDecimal(decimal.NewFromInt(100)),
		},
		Prescription: entity.PrescriptionInfo{Drug: "Ibuprofen", Dose: "200mg"},
	}
}

// seed stores rec in every table the way an add would.
func seed(repo *fakeSheetRepository, rec entity.PatientRecord) {
	for _, table := range entity.Tables() {
		repo.tables[table] = append(repo.tables[table], converter.EncodeRow(table, rec))
	}
}

func TestSubmit_AddAppendsEveryTableInOrder(t *testing.T) {
	repo := newFakeSheetRepository()
	reconciler, audit := newTestReconciler(repo)
	rec := newRecord()

	result, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: rec, Mode: ModeAdd})
	require.NoError(t, err)

	calls := repo.writes()
	require.Len(t, calls, 4)
	for i, table := range entity.Tables() {
		assert.Equal(t, OpAppend, calls[i].Op)
		assert.Equal(t, table, calls[i].Table)
		assert.Equal(t, converter.EncodeRow(table, rec), calls[i].Row)
	}
	assert.Equal(t, entity.Tables(), result.Written)
	assert.Equal(t, 4, audit.appends)
	assert.NotEmpty(t, result.NextDraft.PatientID)
	assert.NotEqual(t, rec.PatientID, result.NextDraft.PatientID)
}

func TestSubmit_AddFillsMissingIdentifiers(t *testing.T) {
	repo := newFakeSheetRepository()
	reconciler, _ := newTestReconciler(repo)
	rec := newRecord()
	rec.PatientID = ""
	rec.Visit.AppointmentID = ""

	result, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: rec, Mode: ModeAdd})
	require.NoError(t, err)

	assert.Regexp(t, `^PT\d{6}$`, result.Record.PatientID)
	assert.Regexp(t, `^APT\d{6}$`, result.Record.Visit.AppointmentID)
}

func TestSubmit_MissingRequiredFieldsWritesNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *entity.PatientRecord)
	}{
		{name: "first name", mutate: func(r *entity.PatientRecord) { r.FirstName = "" }},
		{name: "last name", mutate: func(r *entity.PatientRecord) { r.LastName = "  " }},
		{name: "phone", mutate: func(r *entity.PatientRecord) { r.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSheetRepository()
			reconciler, _ := newTestReconciler(repo)
			rec := newRecord()
			tt.mutate(&rec)

			_, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: rec, Mode: ModeAdd})
			assert.ErrorIs(t, err, ErrMissingRequiredFields)
			assert.Empty(t, repo.writes())
		})
	}
}

func TestSubmit_AddStopsAtFailingTable(t *testing.T) {
	repo := newFakeSheetRepository()
	repo.failOn[entity.TableAppointment] = errors.New("quota exceeded")
	reconciler, _ := newTestReconciler(repo)

	_, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: newRecord(), Mode: ModeAdd})

	var tableErr *TableError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, entity.TableAppointment, tableErr.Table)
	assert.Equal(t, OpAppend, tableErr.Op)
	assert.Equal(t, []entity.Table{entity.TablePatient, entity.TablePhysician}, tableErr.Written)
	assert.Contains(t, err.Error(), "quota exceeded")

	// earlier appends stay, later ones never run
	assert.Len(t, repo.writes(), 2)
	assert.Len(t, repo.tables[entity.TablePrescription], 1)
}

func TestSubmit_EditBillOnlyUpdatesAppointment(t *testing.T) {
	repo := newFakeSheetRepository()
	prior := newRecord()
	seed(repo, prior)
	reconciler, audit := newTestReconciler(repo)

	edited := prior
	edited.Visit.Bill = decimal.NewNullDecimal(decimal.NewFromInt(150))

	result, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: edited, Mode: ModeEdit, Prior: &prior})
	require.NoError(t, err)

	calls := repo.writes()
	require.Len(t, calls, 1)
	assert.Equal(t, OpUpdate, calls[0].Op)
	assert.Equal(t, entity.TableAppointment, calls[0].Table)
	assert.Equal(t, 2, calls[0].RowNumber)
	assert.Equal(t, "150", calls[0].Row[entity.AppointmentColBill])
	assert.Equal(t, []entity.Table{entity.TableAppointment}, result.Written)
	assert.Equal(t, 1, audit.updates)
}

func TestSubmit_EditUnchangedWritesNothing(t *testing.T) {
	repo := newFakeSheetRepository()
	prior := newRecord()
	seed(repo, prior)
	reconciler, _ := newTestReconciler(repo)

	result, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: prior, Mode: ModeEdit, Prior: &prior})
	require.NoError(t, err)
	assert.Empty(t, repo.writes())
	assert.Empty(t, result.Written)
}

func TestSubmit_EditLocatesPrescriptionByPatient(t *testing.T) {
	repo := newFakeSheetRepository()
	other := newRecord()
	other.PatientID = "PT999999"
	other.Visit.AppointmentID = "APT999999"
	seed(repo, other)
	prior := newRecord()
	seed(repo, prior)
	reconciler, _ := newTestReconciler(repo)

	edited := prior
	edited.Prescription.Dose = "400mg"

	_, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: edited, Mode: ModeEdit, Prior: &prior})
	require.NoError(t, err)

	calls := repo.writes()
	require.Len(t, calls, 1)
	assert.Equal(t, entity.TablePrescription, calls[0].Table)
	assert.Equal(t, 3, calls[0].RowNumber)
	assert.Equal(t, "400mg", repo.tables[entity.TablePrescription][2][entity.PrescriptionColDose])
}

func TestSubmit_EditMissingRowNamesTable(t *testing.T) {
	repo := newFakeSheetRepository()
	prior := newRecord()
	seed(repo, prior)
	// appointment row vanished after the record was loaded
	repo.tables[entity.TableAppointment] = repo.tables[entity.TableAppointment][:1]
	reconciler, _ := newTestReconciler(repo)

	edited := prior
	edited.FirstName = "Anna"
	edited.Visit.Bill = decimal.NewNullDecimal(decimal.NewFromInt(1))

	_, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: edited, Mode: ModeEdit, Prior: &prior})

	var tableErr *TableError
	require.ErrorAs(t, err, &tableErr)
	assert.ErrorIs(t, err, service.ErrRowNotFound)
	assert.Equal(t, entity.TableAppointment, tableErr.Table)
	assert.Equal(t, OpLocate, tableErr.Op)
	assert.Equal(t, []entity.Table{entity.TablePatient}, tableErr.Written)
	assert.Contains(t, err.Error(), "appointment")
}

func TestSubmit_EditRequiresSnapshot(t *testing.T) {
	repo := newFakeSheetRepository()
	reconciler, _ := newTestReconciler(repo)
	rec := newRecord()

	_, err := reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: rec, Mode: ModeEdit})
	assert.ErrorIs(t, err, ErrSnapshotRequired)

	prior := newRecord()
	prior.PatientID = "PT000001"
	_, err = reconciler.Submit(context.Background(), testConn, SubmitRequest{Record: rec, Mode: ModeEdit, Prior: &prior})
	assert.ErrorIs(t, err, ErrSnapshotMismatch)
	assert.Empty(t, repo.writes())
}
