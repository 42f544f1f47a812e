// Package fs exports stored documents as a browsable markdown tree.
//
// The export layout mirrors how the documents are organized in the
// store: one directory per category, one file per document. Writes are
// staged in a temporary directory and become visible only on Commit,
// so a running export never leaves a half-written tree behind.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/ampdocs"
)

// DocumentFilename converts a document URL to its export filename.
// The URL path is flattened into a single name with slashes replaced
// by underscores, so every document lands directly in its category
// directory: /react/build-a-backend/auth/ becomes
// react_build-a-backend_auth.md. A root URL becomes index.md.
func DocumentFilename(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ampdocs.Errorf(ampdocs.EINVALID, "invalid document URL %q", rawURL)
	}

	name := strings.ReplaceAll(strings.Trim(u.Path, "/"), "/", "_")
	if name == "" {
		name = "index"
	}
	return name + ".md", nil
}

// FormatDocument renders a document as markdown with YAML frontmatter.
// The frontmatter carries the metadata a reader needs to trace the
// file back to its source page.
func FormatDocument(doc *ampdocs.Document) string {
	category := doc.Category
	if category == "" {
		category = ampdocs.CategoryGeneral
	}
	updated := doc.LastUpdated
	if updated.IsZero() {
		updated = time.Now()
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: ")
	b.WriteString(doc.Title)
	b.WriteString("\nurl: ")
	b.WriteString(doc.URL)
	b.WriteString("\ncategory: ")
	b.WriteString(category)
	b.WriteString("\nlast_updated: ")
	b.WriteString(updated.Format(time.RFC3339))
	b.WriteString("\n---\n\n")
	b.WriteString("# ")
	b.WriteString(doc.Title)
	b.WriteString("\n\nSource: [")
	b.WriteString(doc.URL)
	b.WriteString("](")
	b.WriteString(doc.URL)
	b.WriteString(")\n\n")
	b.WriteString(doc.RenderedContent)
	return b.String()
}

// Ensure Writer implements ampdocs.DocumentWriter at compile time.
var _ ampdocs.DocumentWriter = (*Writer)(nil)

// Writer exports documents to a directory with atomic update semantics.
// Documents are staged under dir.tmp and moved into place on Commit,
// replacing any previous export wholesale.
type Writer struct {
	dir string
}

// NewWriter creates a Writer targeting the given output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) tempDir() string {
	return w.dir + ".tmp"
}

// WriteDocument stages a document as a markdown file under its
// category directory.
func (w *Writer) WriteDocument(ctx context.Context, doc *ampdocs.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	filename, err := DocumentFilename(doc.URL)
	if err != nil {
		return err
	}

	category := doc.Category
	if category == "" {
		category = ampdocs.CategoryGeneral
	}

	dir := filepath.Join(w.tempDir(), category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content := FormatDocument(doc)
	return os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644)
}

// Commit atomically replaces the output directory with the staged
// tree. An export with no documents yields an empty directory.
func (w *Writer) Commit() error {
	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return err
	}

	// Remove the previous export if present
	if err := os.RemoveAll(w.dir); err != nil {
		return err
	}

	return os.Rename(w.tempDir(), w.dir)
}

// Abort discards the staged tree, leaving any previous export intact.
func (w *Writer) Abort() error {
	return os.RemoveAll(w.tempDir())
}
