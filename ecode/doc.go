// Package ecode defines business error codes for API responses, their
// messages and the HTTP status each code maps to.
//
//	resp.Fail(w, &resp.Exception{
//	    Status:  ecode.ToHTTPStatus(ecode.NothingFound),
//	    Code:    ecode.NothingFound,
//	    Message: ecode.Text(ecode.NothingFound),
//	})
//
// Applications may register their own codes with Register.
package ecode
