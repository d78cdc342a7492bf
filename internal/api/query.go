package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"portfolio-backend/internal/apperr"
	"portfolio-backend/internal/portfolio"
)

// QueryService runs the question-answering pipeline.
type QueryService interface {
	Query(ctx context.Context, req portfolio.QueryRequest) (portfolio.QueryResponse, error)
}

type queryBody struct {
	Question string `json:"question"`
	// Query is the key the original frontend sends; kept as an alias.
	Query        string   `json:"query"`
	Repositories []string `json:"repositories"`
}

// QueryHandler serves POST /portfolio/query.
func QueryHandler(svc QueryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body queryBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, logger,
				apperr.Errorf(apperr.KindInvalidRequest, "invalid JSON body: %v", err),
				http.StatusBadGateway)
			return
		}

		question := body.Question
		if question == "" {
			question = body.Query
		}

		resp, err := svc.Query(r.Context(), portfolio.QueryRequest{
			Question:     question,
			Repositories: body.Repositories,
		})
		if err != nil {
			writeError(w, logger, err, http.StatusBadGateway)
			return
		}
		if resp.SourceRepositories == nil {
			resp.SourceRepositories = []string{}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
