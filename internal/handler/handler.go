// Package handler exposes the catalog services over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"catalog-api/internal/model"
	"catalog-api/internal/validation"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent, nothing useful left to do.
		return
	}
}

// writeMessage writes a {"message": ...} body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Message: message})
}

// errorWriter maps service errors onto HTTP responses.
type errorWriter struct {
	production bool
	logger     zerolog.Logger
}

// write renders err. Domain and validation errors keep their own status;
// anything else is a 500.
func (ew errorWriter) write(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		ew.logger.Debug().Str("path", r.URL.Path).Str("errors", verr.Error()).Msg("validation failed")
		writeJSON(w, http.StatusBadRequest, verr)
		return
	}

	var derr *model.DomainError
	if errors.As(err, &derr) {
		status := statusForCode(derr.Code)
		ew.logger.Debug().Str("path", r.URL.Path).Int("status", status).Str("error", derr.Message).Msg("request rejected")
		writeMessage(w, status, derr.Message)
		return
	}

	ew.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("handler error")
	WriteServerError(w, err, ew.production)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeReviewNotFound:
		return http.StatusNotFound
	case model.ErrCodeSearchQueryRequired, model.ErrCodeInvalidRequestBody:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteServerError writes a 500 body. Outside production it carries the
// error message and a stack trace.
func WriteServerError(w http.ResponseWriter, err error, production bool) {
	if production {
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Message: err.Error(),
		Stack:   fmt.Sprintf("%+v", pkgerrors.WithStack(err)),
	})
}

// NotFound answers every unmatched route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Not Found - "+r.RequestURI)
}

// decodeJSON reads the request body into dst. Malformed JSON yields
// model.ErrInvalidRequestBody; a value of the wrong JSON type yields a
// *validation.Error for that field.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	err = json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeError(body, dst, typeErr.Field)
	}

	return model.ErrInvalidRequestBody
}

// typeError reports a field whose JSON value has the wrong type, echoing the
// submitted value.
func typeError(body []byte, dst any, field string) error {
	var value any
	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &raw) == nil {
		_ = json.Unmarshal(raw[field], &value)
	}

	msg := ""
	if provider, ok := dst.(validation.MessageProvider); ok {
		msg = provider.ValidationMessage(field, "type")
	}
	if msg == "" {
		msg = field + " has an invalid type"
	}

	return validation.NewError(field, msg, value)
}
