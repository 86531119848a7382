package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSource_Text(t *testing.T) {
	source := &StringSource{Content: "Jane Doe\r\n\r\n\r\nEXPERIENCE"}
	text, err := source.Text(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nEXPERIENCE", text)
}

func TestFileSource_Text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\nSKILLS\nGo, Python"), 0o644))

	source := &FileSource{Path: path}
	text, err := source.Text(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Go, Python")
}

func TestFileSource_NotFound(t *testing.T) {
	source := &FileSource{Path: filepath.Join(t.TempDir(), "missing.txt")}
	_, err := source.Text(context.Background())
	require.Error(t, err)

	var sourceErr *SourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Contains(t, sourceErr.Message, "not found")
}

func TestPDFSource_RejectsNonPDF(t *testing.T) {
	source := &PDFSource{Path: "resume.docx"}
	_, err := source.Text(context.Background())
	require.Error(t, err)

	var sourceErr *SourceError
	assert.ErrorAs(t, err, &sourceErr)
}

func TestSourceForPath(t *testing.T) {
	source, err := SourceForPath("resume.pdf")
	require.NoError(t, err)
	assert.IsType(t, &PDFSource{}, source)

	source, err = SourceForPath("resume.txt")
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, source)

	_, err = SourceForPath("resume.exe")
	assert.Error(t, err)
}
