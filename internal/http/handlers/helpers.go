package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil && logger != nil {
		logger.Error("json encode error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
	}
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeErrorBody(logger, w, r, status, ErrorResponse{Error: msg})
}

func writeErrorBody(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	if logger != nil {
		fields := []logx.Field{
			logx.String("req_id", reqID(r.Context())),
			logx.Int("status", status),
			logx.String("msg", body.Error),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("http error", fields...)
		} else {
			logger.Debug("http error", fields...)
		}
	}
	writeJSON(logger, w, r, status, body)
}

// writeAppError maps application errors to status codes.
func writeAppError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *apperr.ValidationError
		nc *apperr.NotCoveredError
		te *apperr.TransitionError
	)
	switch {
	case errors.As(err, &ve):
		writeErrorBody(logger, w, r, http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.As(err, &nc):
		writeError(logger, w, r, http.StatusNotFound, nc.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, "not found")
	case errors.As(err, &te):
		writeError(logger, w, r, http.StatusConflict, te.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, conflictMessage(err))
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(logger, w, r, http.StatusServiceUnavailable, "temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(logger, w, r, http.StatusGatewayTimeout, "timeout")
	case errors.Is(err, apperr.ErrConfiguration):
		writeError(logger, w, r, http.StatusInternalServerError, err.Error())
	default:
		if logger != nil {
			logger.Error("unhandled error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
		}
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// conflictMessage keeps the service context ("driver 3 is busy: conflict") without the sentinel suffix.
func conflictMessage(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+apperr.ErrConflict.Error())
	if msg == "" || msg == apperr.ErrConflict.Error() {
		return "conflict"
	}
	return msg
}

const (
	bodyLimit = 1 << 20
)

// decodeJSON reads a single JSON document and validates its struct tags.
func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	if err := validateStruct(dst); err != nil {
		writeAppError(logger, w, r, err)
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return nil, apperr.Validation(name, "must be a positive integer")
	}
	return &v, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, apperr.Validation(name, "must be a boolean")
	}
	return &v, nil
}

func queryString[T ~string](r *http.Request, name string) *T {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return nil
	}
	v := T(s)
	return &v
}
