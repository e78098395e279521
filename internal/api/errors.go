package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnsuccessful marks a 2xx response whose envelope reports failure.
var ErrUnsuccessful = errors.New("unsuccessful response")

type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindUnauthorized
	KindValidation
	KindNotFound
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is returned for every failed request.
type Error struct {
	Kind       Kind
	StatusCode int
	Code       string
	Message    string
	// Fields holds per-field validation messages.
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindNetwork:
		return fmt.Sprintf("request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of an *Error anywhere in err's chain.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// StatusCode returns the HTTP status of an *Error in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// errorBody accepts both the flat and the nested error envelope.
type errorBody struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newStatusError(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Kind: kindForStatus(status)}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		e.Message = eb.Message
		e.Fields = eb.Errors
		if eb.Error != nil {
			e.Code = eb.Error.Code
			if e.Message == "" {
				e.Message = eb.Error.Message
			}
		}
	}
	if len(e.Fields) > 0 {
		e.Kind = KindValidation
	}
	return e
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}
