// Package portfolio turns raw repository records into a bounded context
// document and answers questions about it through an LLM collaborator.
package portfolio

import (
	"time"

	"portfolio-backend/internal/metadata"
)

// RepositorySummary is the normalized view of one repository as exposed to
// the frontend and fed into context assembly. Immutable once fetched.
type RepositorySummary struct {
	Name          string    `json:"name"`
	Owner         string    `json:"owner"`
	Description   string    `json:"description"`
	Language      string    `json:"language"`
	Topics        []string  `json:"topics"`
	Stars         int       `json:"stars"`
	UpdatedAt     time.Time `json:"updated_at"`
	DefaultBranch string    `json:"default_branch"`
	URL           string    `json:"url"`
	Fork          bool      `json:"is_fork"`
}

// Entry pairs a repository with whatever metadata its special files yielded.
type Entry struct {
	Summary  RepositorySummary
	Metadata metadata.Extracted
}

// ContextDocument is the assembled, budget-bounded context for one request.
type ContextDocument struct {
	// Text is the concatenation of all included blocks.
	Text string
	// Included holds the names of repositories whose block made it into
	// Text, in render order.
	Included []string
	// TotalLen is len(Text); always <= the budget Assemble was given.
	TotalLen int
}

// QueryRequest is the body of POST /portfolio/query.
type QueryRequest struct {
	Question string `json:"question"`
	// Repositories optionally restricts the context to the named repos.
	Repositories []string `json:"repositories,omitempty"`
}

// QueryResponse carries the LLM answer plus the repositories whose rendered
// block actually appeared in the prompt context.
type QueryResponse struct {
	AnswerText         string   `json:"answer"`
	SourceRepositories []string `json:"source_repositories"`
}
