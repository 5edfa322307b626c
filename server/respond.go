package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/etnz/pocketpilot/sheets"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// writeDetail writes the {"detail": ...} error body every failure uses.
func writeDetail(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"detail": fmt.Sprintf(format, args...)})
}

// writeError maps the gateway error taxonomy onto HTTP statuses. Anything
// unrecognized is a plain 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		cfgErr      *sheets.ConfigurationError
		schemaErr   *sheets.SchemaError
		unavailable *sheets.StoreUnavailableError
		notFound    *sheets.NotFoundError
	)
	switch {
	case errors.As(err, &cfgErr):
		writeDetail(w, http.StatusInternalServerError, "%v", err)
	case errors.As(err, &schemaErr):
		writeDetail(w, http.StatusUnprocessableEntity, "%v", err)
	case errors.As(err, &unavailable):
		writeDetail(w, http.StatusBadGateway, "%v", err)
	case errors.As(err, &notFound):
		writeDetail(w, http.StatusNotFound, "%v", err)
	default:
		writeDetail(w, http.StatusInternalServerError, "%v", err)
	}
}

// decode reads the request body into v, strictly.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
