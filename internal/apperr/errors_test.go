package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("create post: %w", Wrap(CodeCreateFailed, errors.New("boom")))

	assert.True(t, errors.Is(err, New(CodeCreateFailed, "")))
	assert.False(t, errors.Is(err, New(CodeTitleTooLong, "")))
	assert.Equal(t, CodeCreateFailed, CodeOf(err))
	assert.Equal(t, "couldnt_create_post: boom", Wrap(CodeCreateFailed, errors.New("boom")).Error())
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeBannedFromCommunity, http.StatusForbidden},
		{CodePostingRestricted, http.StatusForbidden},
		{CodeContainsSlurs, http.StatusBadRequest},
		{CodeTitleTooLong, http.StatusBadRequest},
		{CodeLanguageNotAllowed, http.StatusBadRequest},
		{CodeAlreadyFollowing, http.StatusConflict},
		{CodeNotFollowing, http.StatusConflict},
		{CodeCommunityNotFound, http.StatusNotFound},
		{CodeCreateFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(New(tt.code, "")))
		})
	}
}
