package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// StatusError means the server answered with a non-2xx status.
type StatusError struct {
	Op     string
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Op, e.Status, e.Detail)
}

// TransportError means the request was sent but no response arrived.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the missing response is due to a deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// RequestError means the request could not be built or sent at all.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("build %s request: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// detailFromBody pulls the most specific message out of an error body. FastAPI
// style {"detail": ...} wins, then {"error": {"message": ...}}, then {"error": ...}.
func detailFromBody(body []byte, status int) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if s := rawText(parsed.Detail); s != "" {
			return s
		}
		if len(parsed.Error) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(parsed.Error, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
				return strings.TrimSpace(nested.Message)
			}
			if s := rawText(parsed.Error); s != "" {
				return s
			}
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		if len(s) > 300 {
			s = s[:300] + "..."
		}
		return s
	}
	return http.StatusText(status)
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	if raw[0] == '{' {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
