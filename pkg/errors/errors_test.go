package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorIsMatchesByCode(t *testing.T) {
	err := NewUnavailable("matchmaker down", fmt.Errorf("dial tcp: timeout"))
	wrapped := fmt.Errorf("find matches: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrKindUnavailable))
	assert.False(t, stderrors.Is(wrapped, ErrKindValidation))
	assert.Equal(t, "matchmaker down: dial tcp: timeout", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("bad", nil), http.StatusBadRequest},
		{"precondition", NewPrecondition("not pending"), http.StatusConflict},
		{"unavailable", NewUnavailable("down", nil), http.StatusServiceUnavailable},
		{"not found", NewNotFound("request", nil), http.StatusNotFound},
		{"unauthorized", Unauthorized(nil), http.StatusUnauthorized},
		{"forbidden", Forbidden(nil), http.StatusForbidden},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "request not found", Message(NewNotFound("request", nil)))
	assert.Equal(t, "internal server error", Message(fmt.Errorf("raw")))
}
