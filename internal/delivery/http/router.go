package http

import (
	"net/http"

	"patient-sheets/internal/delivery/http/handler"
	"patient-sheets/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	sessionHandler  *handler.SessionHandler
	patientHandler  *handler.PatientHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	sessionHandler *handler.SessionHandler,
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		sessionHandler:  sessionHandler,
		patientHandler:  patientHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/session", r.sessionHandler.OpenSession).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.sessionHandler.Logout).Methods(http.MethodPost)

	// Session and spreadsheet selection
	session := api.PathPrefix("/session").Subrouter()
	session.Use(r.authMiddleware.Authenticate)
	session.HandleFunc("", r.sessionHandler.GetSession).Methods(http.MethodGet)
	session.HandleFunc("/spreadsheet", r.sessionHandler.SelectSpreadsheet).Methods(http.MethodPut)

	spreadsheets := api.PathPrefix("/spreadsheets").Subrouter()
	spreadsheets.Use(r.authMiddleware.Authenticate)
	spreadsheets.HandleFunc("", r.sessionHandler.ListSpreadsheets).Methods(http.MethodGet)

	// Audit trail
	auditLogs := api.PathPrefix("/audit-logs").Subrouter()
	auditLogs.Use(r.authMiddleware.Authenticate)
	auditLogs.Use(middleware.RequireSpreadsheet)
	auditLogs.HandleFunc("", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	auditLogs.HandleFunc("/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Patient records (spreadsheet required)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequireSpreadsheet)
	patients.HandleFunc("", r.patientHandler.ListPatients).Methods(http.MethodGet)
	patients.HandleFunc("", r.patientHandler.AddPatient).Methods(http.MethodPost)
	patients.HandleFunc("/draft", r.patientHandler.GetDraft).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	patients.HandleFunc("/{id}/edit", r.patientHandler.BeginEdit).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
