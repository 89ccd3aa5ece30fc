package upload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"paperdesk/internal/backend"
)

type Classification string

const (
	LocalValidation Classification = "local_validation"
	RejectedFiles   Classification = "rejected_files"
	BadRequest      Classification = "bad_request"
	NotFound        Classification = "not_found"
	TooLarge        Classification = "too_large"
	ServerError     Classification = "server_error"
	OtherHTTP       Classification = "other_http"
	NoResponse      Classification = "no_response"
	Timeout         Classification = "timeout"
	Unknown         Classification = "unknown"
	EmptyResult     Classification = "empty_result"
)

// Failure is a classified, user-presentable failure. Status is set only for
// HTTP classifications.
type Failure struct {
	Classification Classification
	Detail         string
	Status         int
}

func (f *Failure) Error() string {
	return string(f.Classification) + ": " + f.Message()
}

// Message renders the user-facing text for the classification.
func (f *Failure) Message() string {
	switch f.Classification {
	case LocalValidation:
		return "Please select at least one file to upload."
	case RejectedFiles:
		return f.Detail
	case BadRequest:
		return "Bad request: " + f.Detail
	case NotFound:
		return "Server endpoint not found. Please check the server configuration."
	case TooLarge:
		return "Files too large. Please upload smaller files."
	case ServerError:
		return "Server error: " + f.Detail
	case OtherHTTP:
		return fmt.Sprintf("Error %d: %s", f.Status, f.Detail)
	case NoResponse:
		return "No response from server. Please check if the server is running."
	case Timeout:
		return "The server is taking too long to respond. Please try again."
	case EmptyResult:
		return "No papers were processed. Please check your files and try again."
	default:
		return "Error: " + f.Detail
	}
}

// ClassifyError maps a raw backend error onto exactly one classification.
// A nil error yields nil.
func ClassifyError(err error) *Failure {
	if err == nil {
		return nil
	}
	var (
		statusErr    *backend.StatusError
		transportErr *backend.TransportError
	)
	switch {
	case errors.As(err, &statusErr):
		return classifyStatus(statusErr.Status, statusErr.Detail)
	case errors.As(err, &transportErr):
		if transportErr.Timeout() {
			return &Failure{Classification: Timeout, Detail: transportErr.Err.Error()}
		}
		return &Failure{Classification: NoResponse, Detail: transportErr.Err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return &Failure{Classification: Timeout, Detail: err.Error()}
	default:
		return &Failure{Classification: Unknown, Detail: err.Error()}
	}
}

func classifyStatus(status int, detail string) *Failure {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = http.StatusText(status)
	}
	f := &Failure{Detail: detail, Status: status}
	switch status {
	case http.StatusBadRequest:
		f.Classification = BadRequest
	case http.StatusNotFound:
		f.Classification = NotFound
	case http.StatusRequestEntityTooLarge:
		f.Classification = TooLarge
	case http.StatusInternalServerError:
		f.Classification = ServerError
	default:
		f.Classification = OtherHTTP
	}
	return f
}
