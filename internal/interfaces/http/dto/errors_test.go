package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeValidationRequired, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodePDFUnavailable, http.StatusServiceUnavailable},
		{ErrCodeInternal, http.StatusInternalServerError},

		// any domain validation code maps to 400
		{"INVALID_CATEGORY", http.StatusBadRequest},
		{"INVALID_PAGES", http.StatusBadRequest},
		{"INVALID_MODE", http.StatusBadRequest},

		// unrecognized codes fall back to 500
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatusForCode(tt.code), tt.code)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 12, 1, 5)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(12), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	t.Run("exact multiple has no extra page", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 10, 1, 5)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})
}
