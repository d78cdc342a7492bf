package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewRouter wires the HTTP surface. Handlers receive their collaborators
// explicitly; nothing is looked up ambiently at request time.
func NewRouter(gh GitHub, svc QueryService, owner string, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /github/repos", ListReposHandler(gh, owner, logger))
	mux.HandleFunc("GET /github/repos/{owner}/{repo}", GetRepoHandler(gh, logger))
	mux.HandleFunc("GET /github/repos/{owner}/{repo}/readme", ReadmeHandler(gh, logger))
	mux.HandleFunc("POST /portfolio/query", QueryHandler(svc, logger))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return withRequestID(mux, logger)
}

// withRequestID tags every request with a UUID, echoes it back, and logs
// the request once it finishes.
func withRequestID(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
