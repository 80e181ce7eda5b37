package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	postgres "github.com/Bofry/lib-postgres-provision"
)

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("request body required")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	respondJSON(w, status, map[string]any{"error": err.Error()})
}

// provisionStatusCode maps the provisioning error taxonomy onto HTTP status
// codes for the /admin/replication endpoints.
func provisionStatusCode(err error) int {
	switch {
	case postgres.IsAlreadyExistsError(err):
		return http.StatusConflict
	case postgres.IsPermissionDeniedError(err):
		return http.StatusForbidden
	case postgres.IsInvalidArgumentError(err):
		return http.StatusBadRequest
	case postgres.IsNotFoundError(err):
		return http.StatusNotFound
	case postgres.IsResourceExhaustedError(err):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}
