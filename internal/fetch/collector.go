// Package fetch collects repository summaries and special-file metadata
// into the ordered entry list the query pipeline consumes.
package fetch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio-backend/internal/apperr"
	"portfolio-backend/internal/metadata"
	"portfolio-backend/internal/portfolio"
)

// maxConcurrent bounds parallel per-repository metadata fetches. Results
// are written by index, so completion order never affects entry order.
const maxConcurrent = 4

// Provider is the slice of the repository provider the collector needs.
type Provider interface {
	ListRepositories(ctx context.Context, owner string) ([]portfolio.RepositorySummary, error)
	ListFiles(ctx context.Context, owner, repo string) ([]string, error)
	GetFileContent(ctx context.Context, owner, repo, path string) (string, error)
}

type Collector struct {
	provider Provider
	logger   *zap.Logger
}

func NewCollector(provider Provider, logger *zap.Logger) *Collector {
	return &Collector{provider: provider, logger: logger}
}

// Fetch lists owner's repositories and enriches each with extracted
// metadata. A repository whose files cannot be read degrades to an entry
// with the failure recorded in its parse errors; only credential failures
// abort the whole fetch.
func (c *Collector) Fetch(ctx context.Context, owner string) ([]portfolio.Entry, error) {
	repos, err := c.provider.ListRepositories(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Third-party forks carry someone else's work; keep only repos the
	// owner actually owns (own forks included).
	kept := make([]portfolio.RepositorySummary, 0, len(repos))
	for _, r := range repos {
		if r.Fork && r.Owner != "" && r.Owner != owner {
			continue
		}
		kept = append(kept, r)
	}
	repos = kept

	entries := make([]portfolio.Entry, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, repo := range repos {
		g.Go(func() error {
			meta, err := c.collect(gctx, owner, repo.Name)
			if err != nil {
				return err
			}
			entries[i] = portfolio.Entry{Summary: repo, Metadata: meta}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info("collected repository entries", zap.String("owner", owner), zap.Int("count", len(entries)))
	return entries, nil
}

func (c *Collector) collect(ctx context.Context, owner, repo string) (metadata.Extracted, error) {
	files, err := c.provider.ListFiles(ctx, owner, repo)
	if err != nil {
		if apperr.IsAuth(err) {
			return metadata.Extracted{}, err
		}
		c.logger.Warn("listing repository files failed", zap.String("repo", repo), zap.Error(err))
		return metadata.Extracted{
			ParseErrors: []string{fmt.Sprintf("listing files: %v", err)},
		}, nil
	}

	special := metadata.Recognize(files)
	if len(special) == 0 {
		return metadata.Extracted{}, nil
	}

	contents := make(map[string]string, len(special))
	var fetchErrs []string
	for _, name := range special {
		content, err := c.provider.GetFileContent(ctx, owner, repo, name)
		if err != nil {
			if apperr.IsAuth(err) {
				return metadata.Extracted{}, err
			}
			c.logger.Warn("reading special file failed",
				zap.String("repo", repo), zap.String("file", name), zap.Error(err))
			fetchErrs = append(fetchErrs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		contents[name] = content
	}

	extracted := metadata.Extract(contents)
	extracted.ParseErrors = append(fetchErrs, extracted.ParseErrors...)
	return extracted, nil
}
