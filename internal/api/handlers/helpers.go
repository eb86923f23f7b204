package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	perr "delivery-date-service/internal/platform/errors"
	"delivery-date-service/internal/platform/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.C(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("encode response failed")
	}
}

// writeError maps err to its HTTP status and wire form. Server-side failures
// are logged here since the response carries no detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, wire := perr.HTTP(err)
	if status >= http.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, r, status, map[string]perr.Wire{"error": wire})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return perr.Wrap(err, perr.ErrorCodeValidation, "invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return perr.New(perr.ErrorCodeValidation, "body must contain only one JSON object")
	}
	return nil
}
