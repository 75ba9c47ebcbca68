package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
)

// PDFLoader reads a paged text-bearing PDF into per-page text records.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader { return &PDFLoader{} }

// Load extracts plain text page by page. Pages that yield no text are kept
// with empty content so page numbers stay aligned with the source document.
func (l *PDFLoader) Load(path string) (domain.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return domain.Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	f, reader, err := pdf.Open(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	doc := domain.Document{Name: filepath.Base(path)}
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			doc.Pages = append(doc.Pages, domain.Page{Number: i})
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return domain.Document{}, fmt.Errorf("extract page %d of %s: %w", i, path, err)
		}
		doc.Pages = append(doc.Pages, domain.Page{Number: i, Text: strings.TrimSpace(text)})
	}
	return doc, nil
}
