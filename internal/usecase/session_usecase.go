package usecase

import (
	"context"
	"time"

	"patient-sheets/internal/converter"
	"patient-sheets/internal/delivery/dto"
	"patient-sheets/internal/domain/entity"
	"patient-sheets/internal/domain/repository"
	"patient-sheets/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SessionUsecase interface {
	OpenSession(ctx context.Context, req *dto.OpenSessionRequest) (*dto.SessionTokenResponse, error)
	CloseSession(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, session *entity.Session) *dto.SessionResponse
	ListSpreadsheets(ctx context.Context, session *entity.Session) (*dto.SpreadsheetListResponse, error)
	SelectSpreadsheet(ctx context.Context, session *entity.Session, req *dto.SelectSpreadsheetRequest) (*dto.SessionResponse, error)
}

type sessionUsecase struct {
	log         *logrus.Logger
	sessionRepo repository.SessionRepository
	driveRepo   repository.DriveRepository
	jwtService  *jwt.JWTService
	reconciler  *Reconciler
}

func NewSessionUsecase(
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	driveRepo repository.DriveRepository,
	jwtService *jwt.JWTService,
	reconciler *Reconciler,
) SessionUsecase {
	return &sessionUsecase{
		log:         log,
		sessionRepo: sessionRepo,
		driveRepo:   driveRepo,
		jwtService:  jwtService,
		reconciler:  reconciler,
	}
}

// OpenSession stores the forwarded Google credential server-side and returns a
// session token referencing it. The credential itself is never inspected.
func (u *sessionUsecase) OpenSession(ctx context.Context, req *dto.OpenSessionRequest) (*dto.SessionTokenResponse, error) {
	session := &entity.Session{
		ID:          uuid.New().String(),
		AccessToken: req.AccessToken,
		Draft:       u.reconciler.NewDraft(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := u.sessionRepo.Save(ctx, session, u.jwtService.GetSessionExpiry()); err != nil {
		u.log.Warnf("Failed to save session: %+v", err)
		return nil, err
	}

	token, err := u.jwtService.GenerateSessionToken(session.ID)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	return &dto.SessionTokenResponse{
		SessionToken: token,
		ExpiresIn:    int64(u.jwtService.GetSessionExpiry().Seconds()),
	}, nil
}

func (u *sessionUsecase) CloseSession(ctx context.Context, sessionID string) error {
	if err := u.sessionRepo.Delete(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	return nil
}

func (u *sessionUsecase) GetSession(ctx context.Context, session *entity.Session) *dto.SessionResponse {
	return converter.SessionToResponse(session)
}

func (u *sessionUsecase) ListSpreadsheets(ctx context.Context, session *entity.Session) (*dto.SpreadsheetListResponse, error) {
	files, err := u.driveRepo.ListSpreadsheets(ctx, session.AccessToken)
	if err != nil {
		u.log.Warnf("Failed to list spreadsheets: %+v", err)
		return nil, err
	}

	return &dto.SpreadsheetListResponse{
		Spreadsheets: files,
		Total:        len(files),
	}, nil
}

// SelectSpreadsheet points the session at a spreadsheet and starts a fresh
// draft. Any pending edit is discarded.
func (u *sessionUsecase) SelectSpreadsheet(ctx context.Context, session *entity.Session, req *dto.SelectSpreadsheetRequest) (*dto.SessionResponse, error) {
	session.SpreadsheetID = req.SpreadsheetID
	session.SpreadsheetName = req.SpreadsheetName
	session.Draft = u.reconciler.NewDraft()
	session.EditSnapshot = nil

	if err := u.sessionRepo.Update(ctx, session); err != nil {
		u.log.Warnf("Failed to update session: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"session_id":     session.ID,
		"spreadsheet_id": session.SpreadsheetID,
	}).Info("Spreadsheet selected")

	return converter.SessionToResponse(session), nil
}
