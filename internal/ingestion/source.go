package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextSource supplies raw UTF-8 text for a document. Implementations cover
// in-memory strings, plain-text files and PDF files.
type TextSource interface {
	// Text returns the cleaned raw text of the document
	Text(ctx context.Context) (string, error)
	// Name identifies the source for error reporting
	Name() string
}

// StringSource wraps an in-memory string as a TextSource
type StringSource struct {
	Content string
}

// Text returns the cleaned content
func (s *StringSource) Text(_ context.Context) (string, error) {
	return CleanText(s.Content), nil
}

// Name identifies the source
func (s *StringSource) Name() string { return "string" }

// FileSource reads a plain-text document from disk
type FileSource struct {
	Path string
}

// Text reads and cleans the file contents
func (s *FileSource) Text(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &SourceError{Source: s.Path, Message: "file not found", Cause: err}
		}
		return "", &SourceError{Source: s.Path, Message: "failed to read file", Cause: err}
	}
	return CleanText(string(data)), nil
}

// Name identifies the source
func (s *FileSource) Name() string { return s.Path }

// PDFSource extracts text from a PDF file. Extraction is lossy; layout and
// some glyphs may be dropped by the decoder.
type PDFSource struct {
	Path string
}

// Text extracts plain text from every page of the PDF
func (s *PDFSource) Text(_ context.Context) (string, error) {
	if !strings.EqualFold(filepath.Ext(s.Path), ".pdf") {
		return "", &SourceError{Source: s.Path, Message: "file must be a PDF"}
	}

	file, reader, err := pdf.Open(s.Path)
	if err != nil {
		return "", &SourceError{Source: s.Path, Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = file.Close() }()

	if reader.NumPage() == 0 {
		return "", &SourceError{Source: s.Path, Message: "PDF has no pages"}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page degrades the text, it does not fail the document
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	cleaned := CleanText(sb.String())
	if cleaned == "" {
		return "", &SourceError{Source: s.Path, Message: "no text could be extracted from PDF"}
	}
	return cleaned, nil
}

// Name identifies the source
func (s *PDFSource) Name() string { return s.Path }

// PDFBytesSource extracts text from in-memory PDF data
type PDFBytesSource struct {
	Data []byte
}

// Text extracts plain text from every page of the PDF data
func (s *PDFBytesSource) Text(_ context.Context) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(s.Data), int64(len(s.Data)))
	if err != nil {
		return "", &SourceError{Source: "pdf-bytes", Message: "failed to read PDF", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	cleaned := CleanText(sb.String())
	if cleaned == "" {
		return "", &SourceError{Source: "pdf-bytes", Message: "no text could be extracted from PDF"}
	}
	return cleaned, nil
}

// Name identifies the source
func (s *PDFBytesSource) Name() string { return "pdf-bytes" }

// SourceForPath picks a TextSource based on the file extension
func SourceForPath(path string) (TextSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return &PDFSource{Path: path}, nil
	case ".txt", ".md", ".text", "":
		return &FileSource{Path: path}, nil
	default:
		return nil, &SourceError{Source: path, Message: fmt.Sprintf("unsupported file type %q", filepath.Ext(path))}
	}
}
