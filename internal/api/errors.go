package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Error is a non-2xx response from the backend.
type Error struct {
	Method     string
	Path       string
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPStatus returns the response status code.
func (e *Error) HTTPStatus() int {
	return e.StatusCode
}

// InlineMessage returns the message provided by the backend, if any.
func (e *Error) InlineMessage() string {
	return e.Message
}

// errorBody is the backend's error envelope. Older deployments name the
// message field "mensaje".
type errorBody struct {
	Message string `json:"message"`
	Mensaje string `json:"mensaje"`
}

func decodeError(resp *http.Response, method, path string) error {
	apiErr := &Error{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Mensaje != "":
			apiErr.Message = body.Mensaje
		}
		return apiErr
	}

	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "text/plain") {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
