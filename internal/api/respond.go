package api

import (
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"shareit/internal/database"
	"shareit/internal/models"
	"shareit/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the error body shared by the server and the gateway.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError maps a domain error kind to its HTTP status and writes the
// {error, message} body. Unknown errors are reported as internal.
func WriteError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, database.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, database.ErrAlreadyUsed):
		status = http.StatusConflict
	case errors.Is(err, database.ErrUnknownState):
		status = http.StatusInternalServerError
	default:
		logger.Error().Err(err).Msg("unexpected error")
		message = "internal server error"
	}

	writeJSON(w, status, ErrorResponse{Error: http.StatusText(status), Message: message})
}

// callerID extracts the user id from the identity header.
func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(models.HeaderUserID)
	if raw == "" {
		return 0, database.Validationf("missing %s header", models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, database.Validationf("invalid %s header: %s", models.HeaderUserID, raw)
	}
	return id, nil
}

func pathID(r *http.Request, vars map[string]string, name string) (int64, error) {
	id, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil {
		return 0, database.Validationf("invalid %s: %s", name, vars[name])
	}
	return id, nil
}

// pageFromQuery builds a validated PageRequest when both from and size are
// present; pagination is otherwise disabled for the call.
func pageFromQuery(r *http.Request) (*models.PageRequest, error) {
	fromRaw := r.URL.Query().Get("from")
	sizeRaw := r.URL.Query().Get("size")
	if fromRaw == "" || sizeRaw == "" {
		return nil, nil
	}

	from, err := strconv.Atoi(fromRaw)
	if err != nil {
		return nil, database.Validationf("invalid from value: %s", fromRaw)
	}
	size, err := strconv.Atoi(sizeRaw)
	if err != nil {
		return nil, database.Validationf("invalid size value: %s", sizeRaw)
	}
	return service.NewPageRequest(from, size)
}
