package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

const maxBodyBytes = 1 << 16

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readJSON decodes the request body into v. An empty body leaves v untouched.
func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return domain.ErrInvalidRequest
}

func writeError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	writeJSON(w, statusFor(err), errorBody(logger, r, err))
}

// errorBody hides internal error details from clients and logs them instead.
func errorBody(logger *slog.Logger, r *http.Request, err error) errorResponse {
	kind := domain.Kind(err)
	if kind == "internal" {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		return errorResponse{Error: "internal error", Kind: kind}
	}
	return errorResponse{Error: err.Error(), Kind: kind}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrExhausted):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
