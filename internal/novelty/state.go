// Package novelty drives the novelty-check workflow: validate the candidate,
// submit it, and hold the outcome for rendering.
package novelty

import (
	"errors"

	"github.com/jonathan/novelty-score/internal/client"
	"github.com/jonathan/novelty-score/internal/types"
	"github.com/jonathan/novelty-score/internal/validation"
)

// Status is the phase of the current request.
type Status string

// Request phases.
const (
	Idle    Status = "idle"
	Loading Status = "loading"
	Success Status = "success"
	Failed  Status = "failed"
)

// State is a snapshot of the request lifecycle. Result is set only for
// Success; Message and Err only for Failed.
type State struct {
	Status  Status
	Result  *types.NoveltyResult
	Message string
	Err     error
}

var (
	// ErrBusy is returned when a submit or input change arrives while a check is in flight
	ErrBusy = errors.New("a novelty check is already in progress")
	// ErrClosed is returned once the controller has been torn down
	ErrClosed = errors.New("novelty check controller is closed")
)

// Message returns the user-visible text for any workflow error.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}

	var tErr *client.TransportError
	if errors.As(err, &tErr) {
		return tErr.Message()
	}

	return err.Error()
}
