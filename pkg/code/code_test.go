package code

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetailsDoesNotMutateRegisteredCode(t *testing.T) {
	c := ErrorNoteNotFound.WithDetails("id=7")

	assert.True(t, c.HaveDetails())
	assert.Equal(t, []string{"id=7"}, c.Details())
	assert.False(t, ErrorNoteNotFound.HaveDetails())
	assert.Empty(t, ErrorNoteNotFound.Details())
}

func TestIsMatchesClones(t *testing.T) {
	wrapped := fmt.Errorf("update: %w", ErrorNoteSelfParent.WithDetails("parentId=3"))

	assert.True(t, errors.Is(wrapped, ErrorNoteSelfParent))
	assert.False(t, errors.Is(wrapped, ErrorNoteNotFound))
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		code *Code
		want int
	}{
		{SuccessCreate, http.StatusCreated},
		{ErrorNoteTitleRequired, http.StatusBadRequest},
		{ErrorNotUserAuthToken, http.StatusUnauthorized},
		{ErrorInvalidUserAuthToken, http.StatusForbidden},
		{ErrorNoteNotFound, http.StatusNotFound},
		{ErrorUserEmailAlreadyExists, http.StatusConflict},
		{ErrorDBQuery, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.StatusCode(), tt.code.Msg())
	}
}

func TestGetMessageFor(t *testing.T) {
	assert.Equal(t, "Note not found", ErrorNoteNotFound.Lang.GetMessageFor("en"))
	assert.Equal(t, "笔记不存在", ErrorNoteNotFound.Lang.GetMessageFor("zh-CN"))
	assert.Equal(t, "Note not found", ErrorNoteNotFound.Lang.GetMessageFor("fr"))
}
