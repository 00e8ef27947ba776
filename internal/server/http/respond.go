package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
)

const (
	msgUnauthenticated    = "Invalid JWT Token"
	msgBadRequest         = "Invalid Request Body"
	msgDuplicateEmail     = "User already exists"
	msgInvalidCredentials = "Invalid Credentials"
	msgNotFound           = "Transaction Not Found"
	msgInternal           = "Internal Server Error"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeText sends a plain-text message.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// writeServiceError maps service sentinels to a status and a fixed message.
// Anything unrecognized is a 500 without detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeText(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, common.ErrDuplicateEmail):
		writeText(w, http.StatusBadRequest, msgDuplicateEmail)
	case errors.Is(err, common.ErrInvalidCredentials):
		writeText(w, http.StatusBadRequest, msgInvalidCredentials)
	case errors.Is(err, common.ErrValidation):
		writeText(w, http.StatusBadRequest, msgBadRequest)
	case errors.Is(err, common.ErrUnauthenticated):
		writeText(w, http.StatusUnauthorized, msgUnauthenticated)
	default:
		writeText(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON object")
	}
	return nil
}
