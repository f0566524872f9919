package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error, setup func(c *gin.Context)) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if setup != nil {
		setup(c)
	}
	ErrorResponse(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		expose     bool
		wantStatus int
		wantMsg    string
		wantDetail any
	}{
		{
			name:       "code keeps status",
			err:        code.ErrorNoteNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Note not found",
		},
		{
			name:       "wrapped code",
			err:        fmt.Errorf("update: %w", code.ErrorNoteSelfParent),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Note cannot be its own parent",
		},
		{
			name:       "client error detail always shown",
			err:        code.ErrorInvalidParams.WithDetails("email is required"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid parameters",
			wantDetail: "email is required",
		},
		{
			name:       "server detail hidden",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
		{
			name:       "server detail exposed",
			err:        code.ErrorDBQuery.WithDetails("no such table"),
			expose:     true,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Database error",
			wantDetail: "no such table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := render(t, tt.err, func(c *gin.Context) {
				c.Set(TraceIDKey, "trace-1")
				c.Set(ExposeDetailKey, tt.expose)
			})
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Equal(t, tt.wantDetail, body["error"])
			assert.Equal(t, "trace-1", body["traceId"])
		})
	}
}

func TestErrorResponse_Lang(t *testing.T) {
	_, body := render(t, code.ErrorNoteNotFound, func(c *gin.Context) {
		c.Set(LangKey, "zh-CN")
	})
	assert.Equal(t, "笔记不存在", body["message"])
	_, hasTrace := body["traceId"]
	assert.False(t, hasTrace)
}
