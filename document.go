package ampdocs

import (
	"context"
	"time"
)

// Document categories. Every stored document carries exactly one of
// these; pages whose URL maps to none of them fall back to
// CategoryGeneral.
const (
	CategoryGettingStarted  = "getting-started"
	CategoryBackend         = "backend"
	CategoryFrontend        = "frontend"
	CategoryDeployment      = "deployment"
	CategoryReference       = "reference"
	CategoryGuides          = "guides"
	CategoryGeneral         = "general"
	CategoryStorage         = "storage"
	CategoryAuthentication  = "authentication"
	CategoryAPIData         = "api-data"
	CategoryTroubleshooting = "troubleshooting"
)

// Categories returns the fixed set of valid categories in display order.
func Categories() []string {
	return []string{
		CategoryGettingStarted,
		CategoryBackend,
		CategoryFrontend,
		CategoryDeployment,
		CategoryReference,
		CategoryGuides,
		CategoryGeneral,
		CategoryStorage,
		CategoryAuthentication,
		CategoryAPIData,
		CategoryTroubleshooting,
	}
}

// ValidCategory reports whether name is one of the enumerated categories.
func ValidCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}

// Document represents one scraped documentation page. Documents are
// keyed by their canonical URL and overwritten wholesale on each
// successful fetch; there is no partial update or deletion path.
type Document struct {
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	RenderedContent string    `json:"renderedContent"`
	Category        string    `json:"category"`
	ContentHash     string    `json:"contentHash"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Category != "" && !ValidCategory(d.Category) {
		return Errorf(EINVALID, "unknown category %q", d.Category)
	}
	return nil
}

// SortOrder represents the sort order for document queries.
type SortOrder string

// SortOrder constants for DocumentFilter.
const (
	SortByLastUpdated   SortOrder = "last_updated"
	SortByCategoryTitle SortOrder = "category_title"
)

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	// Category restricts results to one category when non-nil.
	Category *string `json:"category"`

	// Term restricts results to documents whose title, content, or URL
	// contains the term as a case-insensitive substring.
	Term *string `json:"term"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// Stats summarizes the contents of the document store.
type Stats struct {
	Documents     int            `json:"documents"`
	ByCategory    map[string]int `json:"byCategory"`
	RenderedBytes int            `json:"renderedBytes"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

// DocumentService represents a service for managing scraped documents.
type DocumentService interface {
	// UpsertDocument creates or replaces the document stored under its
	// URL. LastUpdated is set on every write.
	UpsertDocument(ctx context.Context, doc *Document) error

	// FindDocumentByURL retrieves a document by its canonical URL.
	// Returns ENOTFOUND if no document is stored under the URL.
	FindDocumentByURL(ctx context.Context, url string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// ListCategories returns the categories currently in use, sorted.
	ListCategories(ctx context.Context) ([]string, error)

	// Stats summarizes the store contents.
	Stats(ctx context.Context) (*Stats, error)
}

// DocumentWriter writes documents to an export target. Writers may
// stage output and make it visible only on Commit; Abort discards
// staged output.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error
}
