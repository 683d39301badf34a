package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rahmatd/contactbook/internal/apperror"
)

// Every response uses one of two envelopes:
//
//	success: {"data": <object|array|bool>}          (+ "meta" for pages)
//	failure: {"errors": {<field|"message">: [..]}}

// errMissingAuthContext means a route guarded by RequireAuth ran without a
// user in the context. That is a wiring bug, surfaced as a 500.
var errMissingAuthContext = errors.New("handler: no authenticated user in request context")

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Errors map[string][]string `json:"errors"`
}

// pageMeta accompanies paginated list responses so a client can compute
// the page count: total is the match count before pagination.
type pageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

type pageEnvelope struct {
	Data any      `json:"data"`
	Meta pageMeta `json:"meta"`
}

func newPageMeta(page, limit, total int) pageMeta {
	lastPage := (total + limit - 1) / limit
	if lastPage < 1 {
		lastPage = 1
	}
	return pageMeta{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		LastPage:    lastPage,
	}
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must go out before the first body byte.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeData sends a success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

// writeError maps a domain error to its HTTP status and error envelope.
// Unknown errors become an opaque 500 so internal details never reach the
// client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorEnvelope{Errors: appErr.Bag()})
		return
	}

	slog.Error("internal error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{
		Errors: map[string][]string{"message": {"Internal server error"}},
	})
}

// decodeJSON decodes a request body into dst, mapping malformed JSON to a
// client-facing validation failure.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("", "Invalid request body")
	}
	return nil
}

// pathID parses a numeric URL parameter. A non-numeric segment can never
// match a row, so it maps to the same domain 404 as a miss.
func pathID(r *http.Request, name, notFoundMessage string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperror.NotFound(notFoundMessage)
	}
	return id, nil
}
