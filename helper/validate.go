package helper

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/ncobase/example-api/net/resp"
	"github.com/ncobase/example-api/validation/validator"
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true
}

// ShouldBindAndValidateStruct binds the JSON body into obj and validates it.
// A bind error is returned as is; validation failures come back as field
// path to message pairs.
func ShouldBindAndValidateStruct(c *gin.Context, obj any, lang ...string) (map[string]string, error) {
	if err := c.ShouldBindJSON(obj); err != nil {
		return nil, err
	}
	return validator.ValidateStruct(obj, lang...), nil
}

// Lang picks the validation message language from Accept-Language
func Lang(c *gin.Context) string {
	if strings.HasPrefix(strings.ToLower(c.GetHeader("Accept-Language")), "zh") {
		return "zh"
	}
	return "en"
}

// IsEmptyBody reports whether err comes from binding an empty body
func IsEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}

// BindError turns a JSON binding failure into a 400
func BindError(err error) *resp.Exception {
	msg := err.Error()
	if field, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		if unquoted, uerr := strconv.Unquote(field); uerr == nil {
			field = unquoted
		}
		msg = UnknownProperty(field)
		return resp.BadRequest(msg, map[string]string{field: msg})
	}
	if IsEmptyBody(err) {
		msg = "request body is required"
	}
	return resp.BadRequest(msg)
}

// UnknownProperty is the message for a field the endpoint does not accept
func UnknownProperty(name string) string {
	return fmt.Sprintf("property %s should not exist", name)
}
