package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/envelope-zero/envelopes/internal/httputil"
	"github.com/envelope-zero/envelopes/internal/remote"
	"github.com/envelope-zero/envelopes/internal/service"
	"github.com/envelope-zero/envelopes/internal/store"
)

type httpError struct {
	Error string `json:"error" example:"Envelope not found"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, remote.ErrNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, service.ErrBusy) {
		return http.StatusConflict
	}

	var remoteErr *service.RemoteError
	if errors.As(err, &remoteErr) {
		return http.StatusBadGateway
	}

	var typeErr *json.UnmarshalTypeError
	if errors.Is(err, store.ErrInvalidEnvelopeData) ||
		errors.Is(err, store.ErrInvalidEnvelopeID) ||
		errors.Is(err, store.ErrDuplicateID) ||
		errors.Is(err, httputil.ErrInvalidBody) ||
		errors.Is(err, httputil.ErrRequestBodyEmpty) ||
		errors.As(err, &typeErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

var errHubDisabled = errors.New("the change feed is not available on this server")
