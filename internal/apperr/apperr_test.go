package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("classified error reports its kind", func(t *testing.T) {
		err := Errorf(KindAuth, "token expired")
		assert.Equal(t, KindAuth, KindOf(err))
		assert.True(t, IsAuth(err))
	})

	t.Run("classification survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("fetching repos: %w", E(KindUnavailable, errors.New("timeout")))
		assert.True(t, IsUnavailable(err))
	})

	t.Run("plain errors are unknown", func(t *testing.T) {
		assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
		assert.Equal(t, KindUnknown, KindOf(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Run("includes kind and cause", func(t *testing.T) {
		err := Errorf(KindInvalidRequest, "question must not be empty")
		assert.Equal(t, "invalid_request: question must not be empty", err.Error())
	})

	t.Run("unwraps to the cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := E(KindUnavailable, cause)
		assert.True(t, errors.Is(err, cause))
	})
}
