package github

import (
	"context"

	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/portfolio"
)

// provider is the surface Cached layers over; in production it is *Client.
type provider interface {
	ListRepositories(ctx context.Context, owner string) ([]portfolio.RepositorySummary, error)
	GetRepository(ctx context.Context, owner, repo string) (portfolio.RepositorySummary, error)
	GetReadme(ctx context.Context, owner, repo string) (string, error)
	ListFiles(ctx context.Context, owner, repo string) ([]string, error)
	GetFileContent(ctx context.Context, owner, repo, path string) (string, error)
}

// Cached layers the TTL cache over a Client. Only successful reads are
// cached; errors always come from the live API. With a nil cache every
// call passes straight through.
type Cached struct {
	inner provider
	cache *cache.Cache
}

func NewCached(inner *Client, c *cache.Cache) *Cached {
	return &Cached{inner: inner, cache: c}
}

func (c *Cached) ListRepositories(ctx context.Context, owner string) ([]portfolio.RepositorySummary, error) {
	key := "repos:" + owner
	var cached []portfolio.RepositorySummary
	if err := c.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}
	repos, err := c.inner.ListRepositories(ctx, owner)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, key, repos)
	return repos, nil
}

func (c *Cached) GetRepository(ctx context.Context, owner, repo string) (portfolio.RepositorySummary, error) {
	key := "repo:" + owner + "/" + repo
	var cached portfolio.RepositorySummary
	if err := c.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}
	summary, err := c.inner.GetRepository(ctx, owner, repo)
	if err != nil {
		return portfolio.RepositorySummary{}, err
	}
	c.cache.Set(ctx, key, summary)
	return summary, nil
}

func (c *Cached) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	return c.cachedText(ctx, "readme:"+owner+"/"+repo, func() (string, error) {
		return c.inner.GetReadme(ctx, owner, repo)
	})
}

func (c *Cached) ListFiles(ctx context.Context, owner, repo string) ([]string, error) {
	key := "files:" + owner + "/" + repo
	var cached []string
	if err := c.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}
	files, err := c.inner.ListFiles(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, key, files)
	return files, nil
}

func (c *Cached) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	return c.cachedText(ctx, "file:"+owner+"/"+repo+"/"+path, func() (string, error) {
		return c.inner.GetFileContent(ctx, owner, repo, path)
	})
}

func (c *Cached) cachedText(ctx context.Context, key string, fetch func() (string, error)) (string, error) {
	var cached string
	if err := c.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}
	text, err := fetch()
	if err != nil {
		return "", err
	}
	c.cache.Set(ctx, key, text)
	return text, nil
}
