package handler

import (
	"errors"
	"net/http"

	"patient-sheets/internal/domain/repository"
	"patient-sheets/internal/service"
	"patient-sheets/internal/usecase"
	"patient-sheets/pkg/response"
)

// writePatientError maps record and table failures to responses. Failures of
// the remote service surface with its message unchanged.
func writePatientError(w http.ResponseWriter, err error, fallback string) {
	var tableErr *usecase.TableError
	var remoteErr *repository.RemoteError

	switch {
	case errors.Is(err, usecase.ErrMissingRequiredFields):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrNoSpreadsheet),
		errors.Is(err, usecase.ErrSnapshotRequired),
		errors.Is(err, usecase.ErrSnapshotMismatch),
		errors.Is(err, service.ErrSubmitInProgress):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.As(err, &tableErr) && errors.Is(err, service.ErrRowNotFound):
		response.Error(w, http.StatusNotFound, tableErr.Error(), tableDetail(tableErr))
	case errors.As(err, &tableErr):
		response.BadGateway(w, tableErr.Error(), tableDetail(tableErr))
	case errors.As(err, &remoteErr):
		response.BadGateway(w, remoteErr.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

func tableDetail(err *usecase.TableError) map[string]interface{} {
	written := make([]string, len(err.Written))
	for i, t := range err.Written {
		written[i] = t.String()
	}
	return map[string]interface{}{
		"table":          err.Table.String(),
		"operation":      err.Op,
		"tables_written": written,
	}
}
