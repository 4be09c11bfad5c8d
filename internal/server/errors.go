package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/novelty-score/internal/client"
	"github.com/jonathan/novelty-score/internal/ingest"
	"github.com/jonathan/novelty-score/internal/novelty"
	"github.com/jonathan/novelty-score/internal/validation"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var vErr *validation.ValidationError
	var tErr *client.TransportError
	switch {
	case errors.As(err, &vErr), errors.Is(err, ingest.ErrTitleWithMany):
		return http.StatusBadRequest
	case errors.Is(err, novelty.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, novelty.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.As(err, &tErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
