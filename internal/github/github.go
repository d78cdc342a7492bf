// Package github implements the repository provider against the GitHub API.
package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v53/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"portfolio-backend/internal/apperr"
	"portfolio-backend/internal/portfolio"
)

const perPage = 100

type Client struct {
	gh     *github.Client
	logger *zap.Logger
}

// NewClient builds an authenticated client. An empty token yields an
// unauthenticated client with GitHub's lower rate limits.
func NewClient(token string, logger *zap.Logger) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	return &Client{gh: github.NewClient(httpClient), logger: logger}
}

// ListRepositories returns all of owner's repositories, most recently
// updated first, following pagination to the end.
func (c *Client) ListRepositories(ctx context.Context, owner string) ([]portfolio.RepositorySummary, error) {
	opts := &github.RepositoryListOptions{
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var out []portfolio.RepositorySummary
	for {
		repos, resp, err := c.gh.Repositories.List(ctx, owner, opts)
		if err != nil {
			return nil, classify("listing repositories", err)
		}
		for _, r := range repos {
			out = append(out, summaryFrom(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("listed repositories", zap.String("owner", owner), zap.Int("count", len(out)))
	return out, nil
}

func (c *Client) GetRepository(ctx context.Context, owner, repo string) (portfolio.RepositorySummary, error) {
	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return portfolio.RepositorySummary{}, classify("fetching repository", err)
	}
	return summaryFrom(r), nil
}

// GetReadme returns the decoded README text.
func (c *Client) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	readme, _, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return "", classify("fetching README", err)
	}
	content, err := readme.GetContent()
	if err != nil {
		return "", apperr.Errorf(apperr.KindUnavailable, "decoding README content: %w", err)
	}
	return content, nil
}

// ListFiles returns the filenames in the repository root.
func (c *Client) ListFiles(ctx context.Context, owner, repo string) ([]string, error) {
	_, dir, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, "", nil)
	if err != nil {
		return nil, classify("listing repository contents", err)
	}
	names := make([]string, 0, len(dir))
	for _, entry := range dir {
		if entry.GetType() == "file" {
			names = append(names, entry.GetName())
		}
	}
	return names, nil
}

// GetFileContent returns the decoded content of one file.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", classify("fetching file content", err)
	}
	if file == nil {
		return "", apperr.Errorf(apperr.KindNotFound, "%s is not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", apperr.Errorf(apperr.KindUnavailable, "decoding file content: %w", err)
	}
	return content, nil
}

func summaryFrom(r *github.Repository) portfolio.RepositorySummary {
	return portfolio.RepositorySummary{
		Name:          r.GetName(),
		Owner:         r.GetOwner().GetLogin(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Topics:        r.Topics,
		Stars:         r.GetStargazersCount(),
		UpdatedAt:     r.GetUpdatedAt().Time,
		DefaultBranch: r.GetDefaultBranch(),
		URL:           r.GetHTMLURL(),
		Fork:          r.GetFork(),
	}
}

// classify maps go-github failures onto the pipeline error taxonomy.
func classify(op string, err error) error {
	var rate *github.RateLimitError
	if errors.As(err, &rate) {
		return apperr.Errorf(apperr.KindUnavailable, "%s: rate limited: %w", op, err)
	}
	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		return apperr.Errorf(apperr.KindUnavailable, "%s: rate limited: %w", op, err)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch status := ghErr.Response.StatusCode; {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return apperr.Errorf(apperr.KindAuth, "%s: %w", op, err)
		case status == http.StatusNotFound:
			return apperr.Errorf(apperr.KindNotFound, "%s: %w", op, err)
		case status >= 500:
			return apperr.Errorf(apperr.KindUnavailable, "%s: %w", op, err)
		}
	}

	// Transport-level failures (DNS, timeouts, connection resets).
	return apperr.Errorf(apperr.KindUnavailable, "%s: %w", op, err)
}
