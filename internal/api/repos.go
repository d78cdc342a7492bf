package api

import (
	"context"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"portfolio-backend/internal/apperr"
	"portfolio-backend/internal/portfolio"
)

// GitHub is the slice of the repository provider the proxy endpoints use.
type GitHub interface {
	ListRepositories(ctx context.Context, owner string) ([]portfolio.RepositorySummary, error)
	GetRepository(ctx context.Context, owner, repo string) (portfolio.RepositorySummary, error)
	GetReadme(ctx context.Context, owner, repo string) (string, error)
}

// GitHub login and repository names: alphanumerics, hyphens, dots,
// underscores. Anything else is a malformed identifier.
var identifierRE = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ListReposHandler serves GET /github/repos: the configured owner's
// repositories as a JSON array.
func ListReposHandler(gh GitHub, owner string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repos, err := gh.ListRepositories(r.Context(), owner)
		if err != nil {
			writeError(w, logger, err, http.StatusServiceUnavailable)
			return
		}
		if repos == nil {
			repos = []portfolio.RepositorySummary{}
		}
		writeJSON(w, http.StatusOK, repos)
	}
}

// GetRepoHandler serves GET /github/repos/{owner}/{repo}.
func GetRepoHandler(gh GitHub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, repo, err := pathIdentifiers(r)
		if err != nil {
			writeError(w, logger, err, http.StatusServiceUnavailable)
			return
		}
		summary, err := gh.GetRepository(r.Context(), owner, repo)
		if err != nil {
			writeError(w, logger, err, http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

// ReadmeHandler serves GET /github/repos/{owner}/{repo}/readme as plain text.
func ReadmeHandler(gh GitHub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, repo, err := pathIdentifiers(r)
		if err != nil {
			writeError(w, logger, err, http.StatusServiceUnavailable)
			return
		}
		readme, err := gh.GetReadme(r.Context(), owner, repo)
		if err != nil {
			writeError(w, logger, err, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(readme))
	}
}

func pathIdentifiers(r *http.Request) (owner, repo string, err error) {
	owner = r.PathValue("owner")
	repo = r.PathValue("repo")
	if !identifierRE.MatchString(owner) || !identifierRE.MatchString(repo) {
		return "", "", apperr.Errorf(apperr.KindInvalidRequest, "malformed repository identifier %q/%q", owner, repo)
	}
	return owner, repo, nil
}
