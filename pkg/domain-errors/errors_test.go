package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct code matches", func(t *testing.T) {
		err := New(CodeNotFound, "calculator not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", New(CodeConflict, "duplicate"))
		assert.True(t, HasCode(err, CodeConflict))
	})

	t.Run("nested coded errors are both visible", func(t *testing.T) {
		inner := New(CodeConflict, "duplicate id")
		outer := Wrap(inner, CodeInternal, "registration failed")
		assert.True(t, Is(outer, CodeInternal))
		assert.True(t, Is(outer, CodeConflict))
		assert.Equal(t, CodeInternal, CodeOf(outer))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		err := errors.New("boom")
		assert.False(t, HasCode(err, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(err))
		assert.Empty(t, MessageOf(err))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("message includes cause and unwraps", func(t *testing.T) {
		cause := errors.New("redis down")
		err := Wrap(cause, CodeUnavailable, "rate limit store")
		require.Error(t, err)
		assert.Equal(t, "rate limit store: redis down", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "rate limit store", MessageOf(err))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeValidation:   http.StatusUnprocessableEntity,
		CodeInvalidInput: http.StatusUnprocessableEntity,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeRateLimited:  http.StatusTooManyRequests,
		CodeInternal:     http.StatusInternalServerError,
		Code("unknown"):  http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, HTTPStatus(code), "code %s", code)
	}
}
