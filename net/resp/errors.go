package resp

import (
	"net/http"

	"github.com/ncobase/example-api/ecode"
)

func newException(status, code int, message []string, errs ...any) *Exception {
	msg := ecode.Text(code)
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	e := &Exception{Status: status, Code: code, Message: msg}
	if len(errs) > 0 {
		e.Errors = errs[0]
	}
	return e
}

// BadRequest bad request
func BadRequest(message string, errs ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.RequestErr, []string{message}, errs...)
}

// UnprocessableEntity invalid parameters
func UnprocessableEntity(message string, errs ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.ParamErr, []string{message}, errs...)
}

// NotFound resource not found
func NotFound(message ...string) *Exception {
	return newException(http.StatusNotFound, ecode.NothingFound, message)
}

// Conflict resource conflict
func Conflict(message ...string) *Exception {
	return newException(http.StatusConflict, ecode.Conflict, message)
}

// InternalServer internal server error
func InternalServer(message ...string) *Exception {
	return newException(http.StatusInternalServerError, ecode.ServerErr, message)
}

// ServiceUnavailable dependency unavailable
func ServiceUnavailable(message ...string) *Exception {
	return newException(http.StatusServiceUnavailable, ecode.Unavailable, message)
}
