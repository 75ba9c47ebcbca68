package search

import "context"

// Result is one ranked snippet from a web search provider.
type Result struct {
	Title   string
	URL     string
	Content string
}

// Searcher returns a small ranked set of text snippets for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
