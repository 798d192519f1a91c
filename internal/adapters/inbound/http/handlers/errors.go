package handlers

import (
	"errors"
	"net/http"

	"github.com/architeacher/inventory/internal/domain/model"
)

const (
	codeValidation       = "VALIDATION_ERROR"
	codeInvalidJSON      = "INVALID_JSON"
	codeNotFound         = "NOT_FOUND"
	codeConflict         = "CONFLICT"
	codeCapacityExceeded = "CAPACITY_EXCEEDED"
	codePowerRejected    = "POWER_REJECTED"
	codeStoreUnavailable = "STORE_UNAVAILABLE"
	codeInternalError    = "INTERNAL_ERROR"

	msgInvalidRequestBody = "invalid request body"
	msgInternalError      = "internal server error"
)

// writeError maps inventory errors onto HTTP statuses. Unknown errors are reported
// as 500 without leaking their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErrs *model.ValidationErrors
		powerErr       *model.PowerError
	)

	switch {
	case errors.As(err, &validationErrs):
		details := make([]ErrorDetail, 0, len(validationErrs.Errors))
		for _, e := range validationErrs.Errors {
			details = append(details, ErrorDetail{Field: e.Field, Message: e.Message, Code: e.Code})
		}

		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    codeValidation,
			Message: validationErrs.Error(),
			Details: details,
			Meta:    NewMeta(r),
		})
	case errors.As(err, &powerErr):
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, codePowerRejected, err.Error())
	case errors.Is(err, model.ErrDeviceNotFound):
		writeErrorResponse(w, r, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, model.ErrDuplicateDevice):
		writeErrorResponse(w, r, http.StatusConflict, codeConflict, err.Error())
	case errors.Is(err, model.ErrCapacityExceeded):
		writeErrorResponse(w, r, http.StatusInsufficientStorage, codeCapacityExceeded, err.Error())
	case errors.Is(err, model.ErrInvalidDevice),
		errors.Is(err, model.ErrInvalidDeviceID),
		errors.Is(err, model.ErrInvalidKind),
		errors.Is(err, model.ErrBatteryOutOfRange),
		errors.Is(err, model.ErrInvalidIPAddress):
		writeErrorResponse(w, r, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, model.ErrStoreUnavailable), errors.Is(err, model.ErrStoreNotFound):
		writeErrorResponse(w, r, http.StatusServiceUnavailable, codeStoreUnavailable, err.Error())
	default:
		writeErrorResponse(w, r, http.StatusInternalServerError, codeInternalError, msgInternalError)
	}
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
		Meta:    NewMeta(r),
	})
}
