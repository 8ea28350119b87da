package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"patient-sheets/internal/delivery/dto"
	"patient-sheets/internal/delivery/http/middleware"
	"patient-sheets/internal/domain/repository"
	"patient-sheets/internal/usecase"
	"patient-sheets/pkg/response"
	"patient-sheets/pkg/validator"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.CustomValidator
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

// OpenSession exchanges a Google access token for a session token
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.sessionUsecase.OpenSession(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to open session")
		return
	}

	response.Success(w, http.StatusCreated, "Session opened successfully", token)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.sessionUsecase.CloseSession(r.Context(), sessionID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", h.sessionUsecase.GetSession(r.Context(), session))
}

func (h *SessionHandler) ListSpreadsheets(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	files, err := h.sessionUsecase.ListSpreadsheets(r.Context(), session)
	if err != nil {
		var remoteErr *repository.RemoteError
		if errors.As(err, &remoteErr) {
			response.BadGateway(w, remoteErr.Error(), nil)
			return
		}
		response.InternalServerError(w, "Failed to list spreadsheets")
		return
	}

	message := "Spreadsheets retrieved successfully"
	if files.Total == 0 {
		message = emptyResultMessage
	}
	response.Success(w, http.StatusOK, message, files)
}

func (h *SessionHandler) SelectSpreadsheet(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	var req dto.SelectSpreadsheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	resp, err := h.sessionUsecase.SelectSpreadsheet(r.Context(), session, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to select spreadsheet")
		return
	}

	response.Success(w, http.StatusOK, "Spreadsheet selected successfully", resp)
}
