package portfolio

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"portfolio-backend/internal/apperr"
)

// EntryFetcher supplies the repository entries the context is built from.
type EntryFetcher interface {
	Fetch(ctx context.Context, owner string) ([]Entry, error)
}

// Completer is the LLM collaborator: one prompt in, one answer out,
// single attempt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, question string) (string, error)
}

const promptPreamble = `You are an AI assistant that helps visitors understand the portfolio projects below.
Use the following structured information about the GitHub repositories to answer questions.`

const promptGuidelines = `When answering:
1. Focus on the structured metadata, purpose and components of each project
2. Reference specific projects and their architecture when relevant
3. Organize your response with clear sections and bullet points
4. Emphasize the technical skills the projects demonstrate

Respond specifically and accurately about the projects listed above. If the
context does not cover a question, say so instead of guessing.`

// Processor runs the query pipeline: validate, fetch, assemble, complete.
type Processor struct {
	fetcher EntryFetcher
	llm     Completer
	owner   string
	budget  int
	logger  *zap.Logger
}

func NewProcessor(fetcher EntryFetcher, llm Completer, owner string, budget int, logger *zap.Logger) *Processor {
	return &Processor{
		fetcher: fetcher,
		llm:     llm,
		owner:   owner,
		budget:  budget,
		logger:  logger,
	}
}

// Query answers one request. An empty question is rejected before any
// collaborator is called. Collaborator failures propagate classified; a
// partially constructed answer is never returned.
func (p *Processor) Query(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return QueryResponse{}, apperr.Errorf(apperr.KindInvalidRequest, "question must not be empty")
	}

	entries, err := p.fetcher.Fetch(ctx, p.owner)
	if err != nil {
		return QueryResponse{}, err
	}
	entries = filterEntries(entries, req.Repositories)

	doc := Assemble(entries, p.budget)
	p.logger.Info("assembled context",
		zap.Int("repositories", len(entries)),
		zap.Int("included", len(doc.Included)),
		zap.Int("chars", doc.TotalLen),
	)

	answer, err := p.llm.Complete(ctx, buildPrompt(doc), question)
	if err != nil {
		return QueryResponse{}, err
	}

	return QueryResponse{
		AnswerText:         strings.TrimSpace(answer),
		SourceRepositories: doc.Included,
	}, nil
}

func buildPrompt(doc ContextDocument) string {
	return promptPreamble + "\n\n" + doc.Text + "\n\n" + promptGuidelines
}

// filterEntries applies the request's optional repository allowlist.
func filterEntries(entries []Entry, names []string) []Entry {
	if len(names) == 0 {
		return entries
	}
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if allowed[e.Summary.Name] {
			out = append(out, e)
		}
	}
	return out
}
