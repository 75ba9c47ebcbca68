package domain

import "strings"

// Source identifies which knowledge source answered a query.
type Source string

const (
	SourcePDF     Source = "PDF"
	SourceWeb     Source = "WEB"
	SourceUnknown Source = "UNKNOWN"
)

// ParseSource maps raw model output onto the Source enumeration.
// Anything other than the two recognized literals becomes SourceUnknown.
func ParseSource(raw string) Source {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PDF":
		return SourcePDF
	case "WEB":
		return SourceWeb
	default:
		return SourceUnknown
	}
}

// State is the record threading through one workflow invocation.
// It starts with only Query populated; a terminal state has both
// Answer and Source set. Each invocation owns its State exclusively.
type State struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
	Source Source `json:"source"`
}

// Page is one page of an ingested document.
type Page struct {
	Number int
	Text   string
}

// Document represents a single source document loaded for ingestion.
type Document struct {
	Name  string
	Pages []Page
}

// Chunk is a bounded slice of document text used for indexing.
type Chunk struct {
	ID         string
	DocumentID string
	Index      int
	Page       int
	Text       string
}

// SearchResult is one matching row from a similarity search,
// ordered by the store's return order (descending similarity).
type SearchResult struct {
	Content    string
	Similarity float64
}
