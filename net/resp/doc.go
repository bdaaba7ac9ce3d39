// Package resp writes JSON responses for HTTP handlers.
//
// Success payloads are written as-is:
//
//	resp.Success(w, entity)
//	resp.WithStatusCode(w, http.StatusCreated, entity)
//	resp.WithStatusCode(w, http.StatusNoContent)
//
// Failures share one envelope carrying a business code from ecode:
//
//	{"code": -404, "message": "Example with ID x not found"}
//	{"code": -400, "message": "validation failed", "errors": {"name": "..."}}
//
// built by helpers such as NotFound, BadRequest and InternalServer and
// written with Fail.
package resp
