package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent.
		return
	}
}

// writeError writes a standardised error body.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case code == model.ErrCodeOrderPaid,
		code == model.ErrCodeInsufficientStock,
		code == model.ErrCodeShippingInactive,
		code == model.ErrCodeEmptyCart,
		code == model.ErrCodeWishlistItemExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// writeServiceError turns a service error into a response. Anything that is
// not a DomainError is reported as an internal error without detail.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Msg("service error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "internal server error",
		})
		return
	}

	status := statusFor(de.Code)
	logger.Debug().Str("code", de.Code).Int("status", status).Msg("request rejected")
	writeJSON(w, status, model.ErrorResponse{
		Error:   de.Code,
		Message: de.Message,
		Field:   de.Field,
		Limit:   de.Limit,
	})
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst any, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
				Error:   model.ErrCodeValidation,
				Message: fe.Error(),
				Field:   fe.Field(),
			})
			return false
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, err.Error(), logger)
		return false
	}
	return true
}

// idParam parses a positive integer URL parameter.
func idParam(w http.ResponseWriter, r *http.Request, name string, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidIdentifier, "invalid "+name, logger)
		return 0, false
	}
	return id, true
}
