package helper

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name" validate:"required,min=2"`
}

func newContext(body string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestShouldBindAndValidateStruct(t *testing.T) {
	var p payload
	errs, err := ShouldBindAndValidateStruct(newContext(`{"name":"ok"}`, nil), &p)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "ok", p.Name)

	errs, err = ShouldBindAndValidateStruct(newContext(`{"name":"x"}`, nil), &payload{})
	require.NoError(t, err)
	assert.Contains(t, errs, "name")

	_, err = ShouldBindAndValidateStruct(newContext(`{"name":"ok","extra":1}`, nil), &payload{})
	require.Error(t, err)
	exc := BindError(err)
	assert.Equal(t, http.StatusBadRequest, exc.Status)
	assert.Equal(t, "property extra should not exist", exc.Message)

	_, err = ShouldBindAndValidateStruct(newContext(``, nil), &payload{})
	assert.True(t, IsEmptyBody(err))
	assert.Equal(t, "request body is required", BindError(err).Message)
}

func TestLang(t *testing.T) {
	assert.Equal(t, "zh", Lang(newContext("", map[string]string{"Accept-Language": "zh-CN,zh;q=0.9"})))
	assert.Equal(t, "en", Lang(newContext("", map[string]string{"Accept-Language": "en-US"})))
	assert.Equal(t, "en", Lang(newContext("", nil)))
}
