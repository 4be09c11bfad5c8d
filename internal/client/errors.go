package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Fallback messages shown when the service gives no usable error text.
const (
	FallbackCheckMessage       = "Failed to check novelty. Please try again."
	FallbackIngestMessage      = "Failed to ingest proposal. Please try again."
	FallbackApplicationMessage = "Failed to check application novelty. Please try again."
	FallbackHealthMessage      = "Scoring service is unavailable."
)

// TransportError is a network failure, a non-2xx response, or a response
// that does not match the expected contract.
// StatusCode is 0 when no response was received.
type TransportError struct {
	Op            string
	StatusCode    int
	ServerMessage string
	Fallback      string
	RequestID     string
	Cause         error
}

// Message returns the text to show the user: the server's message when it
// supplied one, otherwise the operation's fallback.
func (e *TransportError) Message() string {
	if e.ServerMessage != "" {
		return e.ServerMessage
	}
	if e.Fallback != "" {
		return e.Fallback
	}
	return "request failed"
}

func (e *TransportError) Error() string {
	var sb strings.Builder
	sb.WriteString("transport error")
	if e.Op != "" {
		sb.WriteString(" in " + e.Op)
	}
	if e.StatusCode != 0 {
		sb.WriteString(fmt.Sprintf(" (status %d)", e.StatusCode))
	}
	sb.WriteString(": " + e.Message())
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return sb.String()
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// errorKeys are checked in order for a human-readable message in an error body.
var errorKeys = []string{"detail", "error", "message"}

// extractServerMessage pulls a message out of an error response body.
// It understands {"detail": "..."}, {"error": "..."}, {"message": "..."} and
// list-shaped details such as [{"msg": "..."}]. Returns "" if none is found.
func extractServerMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, key := range errorKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}

		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(raw, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}

	return ""
}
