package ecode

import (
	"net/http"
	"sync"
)

// Business codes returned in the `code` field of failure responses.
const (
	OK           = 0
	RequestErr   = -400
	ParamErr     = -401
	NothingFound = -404
	Conflict     = -409
	ServerErr    = -500
	Unavailable  = -503
	Deadline     = -504
)

var (
	codeMu sync.RWMutex
	texts  = map[int]string{
		OK:           "ok",
		RequestErr:   "Invalid request",
		ParamErr:     "Invalid parameters",
		NothingFound: "Resource not found",
		Conflict:     "Resource conflict",
		ServerErr:    "Internal server error",
		Unavailable:  "Service unavailable",
		Deadline:     "Deadline exceeded",
	}
	statuses = map[int]int{
		OK:           http.StatusOK,
		RequestErr:   http.StatusBadRequest,
		ParamErr:     http.StatusBadRequest,
		NothingFound: http.StatusNotFound,
		Conflict:     http.StatusConflict,
		ServerErr:    http.StatusInternalServerError,
		Unavailable:  http.StatusServiceUnavailable,
		Deadline:     http.StatusGatewayTimeout,
	}
)

// Register adds or replaces the message for a code
func Register(code int, text string, status ...int) {
	codeMu.Lock()
	defer codeMu.Unlock()
	texts[code] = text
	if len(status) > 0 {
		statuses[code] = status[0]
	}
}

// Text returns the message registered for code
func Text(code int) string {
	codeMu.RLock()
	defer codeMu.RUnlock()
	if t, ok := texts[code]; ok {
		return t
	}
	return texts[ServerErr]
}

// ToHTTPStatus maps a business code to an HTTP status
func ToHTTPStatus(code int) int {
	codeMu.RLock()
	defer codeMu.RUnlock()
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
