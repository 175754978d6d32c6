package server

import (
	"errors"
	"net/http"

	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/storage"
)

// ErrQueryServiceRequired indicates a nil query service was provided.
var ErrQueryServiceRequired = errors.New("query service is required")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps service errors onto HTTP status codes. Unrecognized
// errors are treated as internal faults and their detail is withheld
// from the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrEmptyQuery):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, core.ErrEmbeddingUnavailable):
		return http.StatusServiceUnavailable, "embedding service unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
