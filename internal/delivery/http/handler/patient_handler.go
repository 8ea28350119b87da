package handler

import (
	"encoding/json"
	"net/http"

	"patient-sheets/internal/delivery/dto"
	"patient-sheets/internal/delivery/http/middleware"
	"patient-sheets/internal/usecase"
	"patient-sheets/pkg/response"
	"patient-sheets/pkg/validator"

	"github.com/gorilla/mux"
)

const emptyResultMessage = "No matching results"

type PatientHandler struct {
	patientUsecase usecase.PatientRecordUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientRecordUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// ListPatients handles GET /patients?q=
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	patients, err := h.patientUsecase.ListPatients(r.Context(), session, r.URL.Query().Get("q"))
	if err != nil {
		writePatientError(w, err, "Failed to get patients")
		return
	}

	message := "Patients retrieved successfully"
	if patients.Total == 0 {
		message = emptyResultMessage
	}
	response.Success(w, http.StatusOK, message, patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		writePatientError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	draft, err := h.patientUsecase.GetDraft(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get draft")
		return
	}

	response.Success(w, http.StatusOK, "Draft retrieved successfully", draft)
}

// BeginEdit handles POST /patients/{id}/edit and stores the loaded record for
// the following PUT.
func (h *PatientHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	patient, err := h.patientUsecase.BeginEdit(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		writePatientError(w, err, "Failed to load patient for editing")
		return
	}

	response.Success(w, http.StatusOK, "Patient loaded for editing", patient)
}

func (h *PatientHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	var req dto.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.patientUsecase.AddPatient(r.Context(), session, &req)
	if err != nil {
		writePatientError(w, err, "Failed to add patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient added successfully", result)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	var req dto.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.patientUsecase.UpdatePatient(r.Context(), session, mux.Vars(r)["id"], &req)
	if err != nil {
		writePatientError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", result)
}
