package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"patient-sheets/internal/domain/entity"
	"patient-sheets/internal/service"

	"github.com/sirupsen/logrus"
)

type sheetCall struct {
	Op        string
	Table     entity.Table
	RowNumber int
	Row       entity.Row
}

// fakeSheetRepository keeps tables in memory and records every write.
type fakeSheetRepository struct {
	mu        sync.Mutex
	tables    map[entity.Table][]entity.Row
	calls     []sheetCall
	failOn    map[entity.Table]error
	readError error
	readFailOn map[entity.Table]error
}

func newFakeSheetRepository() *fakeSheetRepository {
	return &fakeSheetRepository{
		tables: map[entity.Table][]entity.Row{
			entity.TablePatient:      {{"patient_id", "first_name", "last_name", "location", "phone", "address", "age", "gender", "physician_id", "email"}},
			entity.TablePhysician:    {{"physician_id", "first_name", "last_name", "phone"}},
			entity.TableAppointment:  {{"appointment_id", "patient_id", "physician_id", "visit_date", "next_visit", "bill"}},
			entity.TablePrescription: {{"physician_id", "patient_id", "drug", "dose", "bill"}},
		},
		failOn: map[entity.Table]error{},
	}
}

func (f *fakeSheetRepository) Read(ctx context.Context, conn entity.Connection, table entity.Table) ([]entity.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readError != nil {
		return nil, f.readError
	}
	if err := f.readFailOn[table]; err != nil {
		return nil, err
	}
	rows := make([]entity.Row, len(f.tables[table]))
	copy(rows, f.tables[table])
	return rows, nil
}

func (f *fakeSheetRepository) Append(ctx context.Context, conn entity.Connection, table entity.Table, row entity.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn[table]; err != nil {
		return err
	}
	f.calls = append(f.calls, sheetCall{Op: OpAppend, Table: table, Row: row})
	f.tables[table] = append(f.tables[table], row)
	return nil
}

func (f *fakeSheetRepository) Update(ctx context.Context, conn entity.Connection, table entity.Table, rowNumber int, row entity.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn[table]; err != nil {
		return err
	}
	f.calls = append(f.calls, sheetCall{Op: OpUpdate, Table: table, RowNumber: rowNumber, Row: row})
	f.tables[table][rowNumber-1] = row
	return nil
}

func (f *fakeSheetRepository) writes() []sheetCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sheetCall(nil), f.calls...)
}

type fakeAuditService struct {
	appends int
	updates int
}

func (f *fakeAuditService) LogAppend(ctx context.Context, sessionID string, conn entity.Connection, table entity.Table, recordID string, row entity.Row) error {
	f.appends++
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, sessionID string, conn entity.Connection, table entity.Table, rowNumber int, recordID string, row entity.Row) error {
	f.updates++
	return nil
}

// sequenceIDGenerator issues predictable identifiers.
type sequenceIDGenerator struct {
	n int
}

func (g *sequenceIDGenerator) PatientID() string {
	g.n++
	return fmt.Sprintf("PT%06d", 100000+g.n)
}

func (g *sequenceIDGenerator) AppointmentID() string {
	g.n++
	return fmt.Sprintf("APT%06d", 100000+g.n)
}

type fakeSessionRepository struct {
	sessions map[string]*entity.Session
	updates  int
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*entity.Session{}}
}

func (f *fakeSessionRepository) Save(ctx context.Context, s *entity.Session, ttl time.Duration) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepository) Update(ctx context.Context, s *entity.Session) error {
	f.updates++
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepository) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeSubmitGuard holds locks in memory.
type fakeSubmitGuard struct {
	held map[string]bool
}

func (g *fakeSubmitGuard) Acquire(ctx context.Context, sessionID string) (func(), error) {
	if g.held == nil {
		g.held = map[string]bool{}
	}
	if g.held[sessionID] {
		return nil, service.ErrSubmitInProgress
	}
	g.held[sessionID] = true
	return func() { g.held[sessionID] = false }, nil
}
