package github

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	gogithub "github.com/google/go-github/v53/github"
	"github.com/stretchr/testify/assert"

	"portfolio-backend/internal/apperr"
)

func httpResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Request: &http.Request{
			Method: http.MethodGet,
			URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: "/repos/octocat/alpha"},
		},
	}
}

func TestClassify(t *testing.T) {
	t.Run("401 is auth", func(t *testing.T) {
		err := classify("fetching repository", &gogithub.ErrorResponse{Response: httpResponse(http.StatusUnauthorized)})
		assert.True(t, apperr.IsAuth(err))
	})

	t.Run("403 is auth", func(t *testing.T) {
		err := classify("fetching repository", &gogithub.ErrorResponse{Response: httpResponse(http.StatusForbidden)})
		assert.True(t, apperr.IsAuth(err))
	})

	t.Run("404 is not found", func(t *testing.T) {
		err := classify("fetching repository", &gogithub.ErrorResponse{Response: httpResponse(http.StatusNotFound)})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("rate limit is unavailable", func(t *testing.T) {
		err := classify("listing repositories", &gogithub.RateLimitError{Response: httpResponse(http.StatusForbidden)})
		assert.True(t, apperr.IsUnavailable(err))
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		err := classify("fetching README", &gogithub.ErrorResponse{Response: httpResponse(http.StatusBadGateway)})
		assert.True(t, apperr.IsUnavailable(err))
	})

	t.Run("transport error is unavailable", func(t *testing.T) {
		err := classify("listing repositories", errors.New("dial tcp: lookup api.github.com: no such host"))
		assert.True(t, apperr.IsUnavailable(err))
	})
}

func TestSummaryFrom(t *testing.T) {
	updated := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	repo := &gogithub.Repository{
		Name:            gogithub.String("alpha"),
		Owner:           &gogithub.User{Login: gogithub.String("octocat")},
		Description:     gogithub.String("demo service"),
		Language:        gogithub.String("Go"),
		Topics:          []string{"api", "demo"},
		StargazersCount: gogithub.Int(7),
		UpdatedAt:       &gogithub.Timestamp{Time: updated},
		DefaultBranch:   gogithub.String("main"),
		HTMLURL:         gogithub.String("https://github.com/octocat/alpha"),
		Fork:            gogithub.Bool(true),
	}

	got := summaryFrom(repo)

	assert.Equal(t, "alpha", got.Name)
	assert.Equal(t, "octocat", got.Owner)
	assert.Equal(t, "demo service", got.Description)
	assert.Equal(t, "Go", got.Language)
	assert.Equal(t, []string{"api", "demo"}, got.Topics)
	assert.Equal(t, 7, got.Stars)
	assert.Equal(t, updated, got.UpdatedAt)
	assert.Equal(t, "main", got.DefaultBranch)
	assert.True(t, got.Fork)
}

func TestSummaryFromNilFields(t *testing.T) {
	got := summaryFrom(&gogithub.Repository{Name: gogithub.String("bare")})

	assert.Equal(t, "bare", got.Name)
	assert.Empty(t, got.Owner)
	assert.Empty(t, got.Topics)
	assert.Zero(t, got.Stars)
	assert.False(t, got.Fork)
}
