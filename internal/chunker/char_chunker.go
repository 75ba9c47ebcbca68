package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
)

// CharChunker splits document pages into fixed-size character chunks with overlap.
// Size and overlap are configuration constants, not derived from content.
type CharChunker struct {
	size    int
	overlap int
}

func NewCharChunker(size, overlap int) *CharChunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 10
	}
	return &CharChunker{size: size, overlap: overlap}
}

// Chunk walks each page in order and emits overlapping windows of runes.
// Chunk indexes are document-global so provenance survives concatenation.
func (c *CharChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	idx := 0
	for _, page := range document.Pages {
		text := strings.TrimSpace(page.Text)
		if text == "" {
			continue
		}
		runes := []rune(text)
		start := 0
		for start < len(runes) {
			end := start + c.size
			if end > len(runes) {
				end = len(runes)
			}
			piece := strings.TrimSpace(string(runes[start:end]))
			if piece != "" {
				chunks = append(chunks, domain.Chunk{
					ID:         uuid.NewString(),
					DocumentID: document.Name,
					Index:      idx,
					Page:       page.Number,
					Text:       piece,
				})
				idx++
			}
			if end == len(runes) {
				break
			}
			start = end - c.overlap
		}
	}
	return chunks, nil
}
