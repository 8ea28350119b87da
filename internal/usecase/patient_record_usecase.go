package usecase

import (
	"context"
	"errors"

	"patient-sheets/internal/converter"
	"patient-sheets/internal/delivery/dto"
	"patient-sheets/internal/domain/entity"
	"patient-sheets/internal/domain/repository"
	"patient-sheets/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoSpreadsheet   = errors.New("no spreadsheet selected")
	ErrPatientNotFound = errors.New("patient not found")
)

type PatientRecordUsecase interface {
	ListPatients(ctx context.Context, session *entity.Session, query string) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, session *entity.Session, patientID string) (*dto.PatientResponse, error)
	GetDraft(ctx context.Context, session *entity.Session) (*dto.PatientResponse, error)
	BeginEdit(ctx context.Context, session *entity.Session, patientID string) (*dto.PatientResponse, error)
	AddPatient(ctx context.Context, session *entity.Session, req *dto.PatientRequest) (*dto.SubmitPatientResponse, error)
	UpdatePatient(ctx context.Context, session *entity.Session, patientID string, req *dto.PatientRequest) (*dto.SubmitPatientResponse, error)
}

type patientRecordUsecase struct {
	log         *logrus.Logger
	sessionRepo repository.SessionRepository
	tableReader *service.TableReader
	reconciler  *Reconciler
	submitGuard service.SubmitGuard
}

func NewPatientRecordUsecase(
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	tableReader *service.TableReader,
	reconciler *Reconciler,
	submitGuard service.SubmitGuard,
) PatientRecordUsecase {
	return &patientRecordUsecase{
		log:         log,
		sessionRepo: sessionRepo,
		tableReader: tableReader,
		reconciler:  reconciler,
		submitGuard: submitGuard,
	}
}

func (u *patientRecordUsecase) ListPatients(ctx context.Context, session *entity.Session, query string) (*dto.PatientListResponse, error) {
	if session.SpreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}

	views, err := u.loadViews(ctx, session.Connection(), true)
	if err != nil {
		return nil, err
	}

	filtered := service.Filter(views, query)

	return &dto.PatientListResponse{
		Patients: converter.PatientRecordsToResponses(filtered),
		Total:    len(filtered),
		Query:    query,
	}, nil
}

func (u *patientRecordUsecase) GetPatient(ctx context.Context, session *entity.Session, patientID string) (*dto.PatientResponse, error) {
	view, err := u.findView(ctx, session, patientID)
	if err != nil {
		return nil, err
	}

	resp := converter.PatientRecordToResponse(*view)
	return &resp, nil
}

func (u *patientRecordUsecase) GetDraft(ctx context.Context, session *entity.Session) (*dto.PatientResponse, error) {
	if session.Draft.PatientID == "" {
		session.Draft = u.reconciler.NewDraft()
		if err := u.sessionRepo.Update(ctx, session); err != nil {
			u.log.Warnf("Failed to save draft: %+v", err)
			return nil, err
		}
	}

	resp := converter.PatientRecordToResponse(session.Draft)
	return &resp, nil
}

// BeginEdit stores the current projection of the patient as the edit snapshot.
func (u *patientRecordUsecase) BeginEdit(ctx context.Context, session *entity.Session, patientID string) (*dto.PatientResponse, error) {
	view, err := u.findView(ctx, session, patientID)
	if err != nil {
		return nil, err
	}

	session.EditSnapshot = view
	if err := u.sessionRepo.Update(ctx, session); err != nil {
		u.log.Warnf("Failed to save edit snapshot: %+v", err)
		return nil, err
	}

	resp := converter.PatientRecordToResponse(*view)
	return &resp, nil
}

func (u *patientRecordUsecase) AddPatient(ctx context.Context, session *entity.Session, req *dto.PatientRequest) (*dto.SubmitPatientResponse, error) {
	if session.SpreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}

	release, err := u.submitGuard.Acquire(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	rec := converter.PatientRequestToRecord(req)
	if rec.PatientID == "" {
		rec.PatientID = session.Draft.PatientID
	}
	if rec.Visit.AppointmentID == "" {
		rec.Visit.AppointmentID = session.Draft.Visit.AppointmentID
	}

	result, err := u.reconciler.Submit(ctx, session.Connection(), SubmitRequest{
		SessionID: session.ID,
		Record:    rec,
		Mode:      ModeAdd,
	})
	if err != nil {
		return nil, err
	}

	return u.finishSubmit(ctx, session, result), nil
}

func (u *patientRecordUsecase) UpdatePatient(ctx context.Context, session *entity.Session, patientID string, req *dto.PatientRequest) (*dto.SubmitPatientResponse, error) {
	if session.SpreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}
	if session.EditSnapshot == nil {
		return nil, ErrSnapshotRequired
	}

	release, err := u.submitGuard.Acquire(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	rec := converter.PatientRequestToRecord(req)
	rec.PatientID = patientID

	result, err := u.reconciler.Submit(ctx, session.Connection(), SubmitRequest{
		SessionID: session.ID,
		Record:    rec,
		Mode:      ModeEdit,
		Prior:     session.EditSnapshot,
	})
	if err != nil {
		return nil, err
	}

	return u.finishSubmit(ctx, session, result), nil
}

// finishSubmit clears the draft and the edit snapshot. The rows are already
// written, so a failure to persist the session is only logged.
func (u *patientRecordUsecase) finishSubmit(ctx context.Context, session *entity.Session, result *SubmitResult) *dto.SubmitPatientResponse {
	session.Draft = result.NextDraft
	session.EditSnapshot = nil
	if err := u.sessionRepo.Update(ctx, session); err != nil {
		u.log.Warnf("Failed to reset draft for session %s: %+v", session.ID, err)
	}

	return &dto.SubmitPatientResponse{
		Patient:       converter.PatientRecordToResponse(result.Record),
		TablesWritten: converter.TablesToNames(result.Written),
		NextDraft:     converter.PatientRecordToResponse(result.NextDraft),
	}
}

func (u *patientRecordUsecase) findView(ctx context.Context, session *entity.Session, patientID string) (*entity.PatientRecord, error) {
	if session.SpreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}

	views, err := u.loadViews(ctx, session.Connection(), false)
	if err != nil {
		return nil, err
	}

	for i := range views {
		if views[i].PatientID == patientID {
			return &views[i], nil
		}
	}
	return nil, ErrPatientNotFound
}

// loadViews reads the four tables concurrently and joins them. With
// optionalPrescriptions a failed prescription read joins as an empty table.
func (u *patientRecordUsecase) loadViews(ctx context.Context, conn entity.Connection, optionalPrescriptions bool) ([]entity.PatientRecord, error) {
	var patientRows, physicianRows, appointmentRows, prescriptionRows []entity.Row

	g, gctx := errgroup.WithContext(ctx)
	read := func(table entity.Table, dst *[]entity.Row) {
		g.Go(func() error {
			rows, err := u.tableReader.Read(gctx, conn, table)
			if err != nil {
				if optionalPrescriptions && table == entity.TablePrescription {
					u.log.Warnf("Failed to read %s table, listing without prescriptions: %+v", table, err)
					return nil
				}
				return err
			}
			*dst = rows
			return nil
		})
	}
	read(entity.TablePatient, &patientRows)
	read(entity.TablePhysician, &physicianRows)
	read(entity.TableAppointment, &appointmentRows)
	read(entity.TablePrescription, &prescriptionRows)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return service.Project(
		patientRows,
		service.BuildPhysicianIndex(physicianRows),
		service.IndexRows(appointmentRows, entity.AppointmentColPatientID),
		service.IndexRows(prescriptionRows, entity.PrescriptionColPatientID),
	), nil
}
