package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidRequest is returned before any network call when a request
	// fails validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMalformedResponse is returned when a successful response cannot be
	// decoded or carries no image.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInvalidImage is returned when image data is not valid base64.
	ErrInvalidImage = errors.New("invalid image data")
)

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Status     string
	Type       string
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "getimg: unexpected status %s", e.Status)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	return b.String()
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

func newStatusError(resp *http.Response, body []byte) *StatusError {
	se := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
	if se.Status == "" {
		se.Status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
		se.Message = eb.Error.Message
		se.Type = eb.Error.Type
		se.Code = eb.Error.Code
		return se
	}
	se.Message = strings.TrimSpace(string(body))
	return se
}

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidRequest, format, args...)
}
