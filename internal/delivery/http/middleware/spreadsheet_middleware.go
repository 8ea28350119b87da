package middleware

import (
	"net/http"

	"patient-sheets/pkg/response"
)

// RequireSpreadsheet rejects requests whose session has no spreadsheet selected.
// Must run after Authenticate.
func RequireSpreadsheet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSessionFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Session not found")
			return
		}

		if session.SpreadsheetID == "" {
			response.Conflict(w, "Select a spreadsheet first")
			return
		}

		next.ServeHTTP(w, r)
	})
}
