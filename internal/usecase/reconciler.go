package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"patient-sheets/internal/converter"
	"patient-sheets/internal/domain/entity"
	"patient-sheets/internal/domain/repository"
	"patient-sheets/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingRequiredFields = errors.New("please fill out all required fields")
	ErrSnapshotRequired      = errors.New("edit requires the record as it was loaded")
	ErrSnapshotMismatch      = errors.New("patient id does not match the record being edited")
)

type SubmitMode int

const (
	ModeAdd SubmitMode = iota
	ModeEdit
)

func (m SubmitMode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "add"
}

// Table operations named in a TableError.
const (
	OpAppend = "append"
	OpLocate = "locate"
	OpUpdate = "update"
)

// TableError reports the table whose operation stopped a submit. Written lists
// the tables already changed before the failure; they are not rolled back.
type TableError struct {
	Table   entity.Table
	Op      string
	Written []entity.Table
	Err     error
}

func (e *TableError) Error() string {
	if errors.Is(e.Err, service.ErrRowNotFound) {
		return fmt.Sprintf("no matching record found in %s", e.Table)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

type SubmitRequest struct {
	SessionID string
	Record    entity.PatientRecord
	Mode      SubmitMode
	// Prior is the record as loaded for editing. Required in ModeEdit.
	Prior *entity.PatientRecord
}

type SubmitResult struct {
	Record    entity.PatientRecord
	Written   []entity.Table
	NextDraft entity.PatientRecord
}

// Reconciler turns one submitted record into row writes across the four tables.
type Reconciler struct {
	log          *logrus.Logger
	sheetRepo    repository.SheetRepository
	tableReader  *service.TableReader
	auditService service.AuditService
	idGenerator  service.IDGenerator
}

func NewReconciler(
	log *logrus.Logger,
	sheetRepo repository.SheetRepository,
	tableReader *service.TableReader,
	auditService service.AuditService,
	idGenerator service.IDGenerator,
) *Reconciler {
	return &Reconciler{
		log:          log,
		sheetRepo:    sheetRepo,
		tableReader:  tableReader,
		auditService: auditService,
		idGenerator:  idGenerator,
	}
}

// NewDraft returns an empty record with fresh patient and appointment identifiers.
func (r *Reconciler) NewDraft() entity.PatientRecord {
	return entity.NewDraft(r.idGenerator.PatientID(), r.idGenerator.AppointmentID())
}

// Submit validates the record and writes it. Add appends one row to every
// table in order. Edit overwrites, in the same order, only the tables whose
// fields differ from Prior, locating each row again right before writing it.
// The first failing table operation aborts the remaining writes.
func (r *Reconciler) Submit(ctx context.Context, conn entity.Connection, req SubmitRequest) (*SubmitResult, error) {
	rec := req.Record
	if err := validateRecord(rec); err != nil {
		return nil, err
	}

	var (
		written []entity.Table
		err     error
	)
	switch req.Mode {
	case ModeEdit:
		if req.Prior == nil {
			return nil, ErrSnapshotRequired
		}
		if rec.PatientID != req.Prior.PatientID {
			return nil, ErrSnapshotMismatch
		}
		written, err = r.edit(ctx, conn, req.SessionID, *req.Prior, rec)
	default:
		if rec.PatientID == "" {
			rec.PatientID = r.idGenerator.PatientID()
		}
		if rec.Visit.AppointmentID == "" {
			rec.Visit.AppointmentID = r.idGenerator.AppointmentID()
		}
		written, err = r.add(ctx, conn, req.SessionID, rec)
	}
	if err != nil {
		return nil, err
	}

	r.log.WithFields(logrus.Fields{
		"mode":       req.Mode.String(),
		"patient_id": rec.PatientID,
		"tables":     converter.TablesToNames(written),
	}).Info("Patient record submitted")

	return &SubmitResult{
		Record:    rec,
		Written:   written,
		NextDraft: r.NewDraft(),
	}, nil
}

func (r *Reconciler) add(ctx context.Context, conn entity.Connection, sessionID string, rec entity.PatientRecord) ([]entity.Table, error) {
	written := make([]entity.Table, 0, len(entity.Tables()))
	for _, table := range entity.Tables() {
		row := converter.EncodeRow(table, rec)
		if err := r.sheetRepo.Append(ctx, conn, table, row); err != nil {
			r.log.Warnf("Failed to append row to %s: %+v", table, err)
			return nil, &TableError{Table: table, Op: OpAppend, Written: written, Err: err}
		}
		written = append(written, table)

		if err := r.auditService.LogAppend(ctx, sessionID, conn, table, table.LocatorValue(rec), row); err != nil {
			r.log.Warnf("Failed to audit append to %s: %+v", table, err)
		}
	}
	return written, nil
}

func (r *Reconciler) edit(ctx context.Context, conn entity.Connection, sessionID string, prior, rec entity.PatientRecord) ([]entity.Table, error) {
	written := make([]entity.Table, 0, len(entity.Tables()))
	for _, table := range service.ChangedTables(prior, rec) {
		key := table.LocatorValue(rec)
		rowNumber, err := r.tableReader.Locate(ctx, conn, table, table.LocatorColumn(), key)
		if err != nil {
			r.log.Warnf("Failed to locate %q in %s: %+v", key, table, err)
			return nil, &TableError{Table: table, Op: OpLocate, Written: written, Err: err}
		}

		row := converter.EncodeRow(table, rec)
		if err := r.sheetRepo.Update(ctx, conn, table, rowNumber, row); err != nil {
			r.log.Warnf("Failed to update row %d of %s: %+v", rowNumber, table, err)
			return nil, &TableError{Table: table, Op: OpUpdate, Written: written, Err: err}
		}
		written = append(written, table)

		if err := r.auditService.LogUpdate(ctx, sessionID, conn, table, rowNumber, key, row); err != nil {
			r.log.Warnf("Failed to audit update of %s: %+v", table, err)
		}
	}
	return written, nil
}

func validateRecord(rec entity.PatientRecord) error {
	if strings.TrimSpace(rec.FirstName) == "" ||
		strings.TrimSpace(rec.LastName) == "" ||
		strings.TrimSpace(rec.Phone) == "" {
		return ErrMissingRequiredFields
	}
	return nil
}
