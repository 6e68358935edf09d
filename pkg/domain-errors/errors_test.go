package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFollowsWrappedChain(t *testing.T) {
	base := errors.New("connection refused")
	err := fmt.Errorf("save slip: %w", Wrap(base, CodeSyncFailed, "cloud sync failed"))

	assert.True(t, Is(err, CodeSyncFailed))
	assert.False(t, Is(err, CodeNotFound))
	assert.ErrorIs(t, err, base)

	code, ok := HasCode(err)
	assert.True(t, ok)
	assert.Equal(t, CodeSyncFailed, code)
}

func TestHasCodePlainError(t *testing.T) {
	_, ok := HasCode(errors.New("plain"))
	assert.False(t, ok)
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeSyncFailed, http.StatusBadGateway},
		{CodeInternal, http.StatusInternalServerError},
		{Code("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.code))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "not found", New(CodeNotFound, "not found").Error())
	assert.Equal(t, "sync: boom", Wrap(errors.New("boom"), CodeSyncFailed, "sync").Error())
}
