package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"portfolio-backend/internal/apperr"
)

func TestClassify(t *testing.T) {
	t.Run("deadline exceeded is unavailable", func(t *testing.T) {
		assert.True(t, apperr.IsUnavailable(classify(context.DeadlineExceeded)))
	})

	t.Run("401 is auth", func(t *testing.T) {
		err := classify(&openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "invalid key"})
		assert.True(t, apperr.IsAuth(err))
	})

	t.Run("rate limit is unavailable", func(t *testing.T) {
		err := classify(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"})
		assert.True(t, apperr.IsUnavailable(err))
	})

	t.Run("oversized prompt rejection is unavailable", func(t *testing.T) {
		err := classify(&openai.APIError{HTTPStatusCode: http.StatusRequestEntityTooLarge, Message: "too long"})
		assert.True(t, apperr.IsUnavailable(err))
	})

	t.Run("request error with 403 is auth", func(t *testing.T) {
		err := classify(&openai.RequestError{
			HTTPStatusCode: http.StatusForbidden,
			Err:            errors.New("forbidden"),
		})
		assert.True(t, apperr.IsAuth(err))
	})

	t.Run("transport error is unavailable", func(t *testing.T) {
		err := classify(errors.New("connection reset by peer"))
		assert.True(t, apperr.IsUnavailable(err))
	})
}
