package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func newJSONContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindAndValid(t *testing.T) {
	uni, err := InitValidator()
	require.NoError(t, err)
	trans, _ := uni.GetTranslator("en")

	c, _ := newJSONContext(`{"email":"nope"}`)
	c.Set(ContextTransKey, trans)

	var form loginForm
	ok, errs := BindAndValid(c, &form)
	assert.False(t, ok)
	require.Len(t, errs, 2)
	assert.Contains(t, errs.MapsToString(), "email: email must be a valid email address")
	assert.Contains(t, errs.MapsToString(), "password: password is a required field")

	c, _ = newJSONContext(`{"email":"a@example.com","password":"x"}`)
	ok, errs = BindAndValid(c, &form)
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, "a@example.com", form.Email)
}

func TestBindAndValid_MalformedBody(t *testing.T) {
	c, _ := newJSONContext(`{"email":`)
	var form loginForm
	ok, errs := BindAndValid(c, &form)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Key)
}

func TestToResponse(t *testing.T) {
	c, w := newJSONContext("")
	NewResponse(c).ToResponse(code.SuccessCreate.WithData(map[string]int{"id": 3}))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":3}`, w.Body.String())

	c, w = newJSONContext("")
	NewResponse(c).ToResponse(code.SuccessSignup)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Signup successful"}`, w.Body.String())

	c, w = newJSONContext("")
	NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Access token required", body["message"])
	assert.EqualValues(t, code.ErrorNotUserAuthToken.Code(), body["code"])
}
