package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ampdocs"
)

// Compile-time interface verification.
var _ ampdocs.DocumentService = (*DocumentService)(nil)

// DocumentService implements ampdocs.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// UpsertDocument creates or replaces the document stored under its URL.
// LastUpdated is set on every write and the content hash is recomputed,
// so repeated crawls of an unchanged page still refresh the timestamp.
func (s *DocumentService) UpsertDocument(ctx context.Context, doc *ampdocs.Document) error {
	if doc.Category == "" {
		doc.Category = ampdocs.CategoryGeneral
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.LastUpdated = time.Now().UTC()
	doc.ContentHash = hashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (url, title, content, rendered_content, category, content_hash, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			rendered_content = excluded.rendered_content,
			category = excluded.category,
			content_hash = excluded.content_hash,
			last_updated = excluded.last_updated
	`, doc.URL, doc.Title, doc.Content, doc.RenderedContent, doc.Category, doc.ContentHash,
		doc.LastUpdated.Format(time.RFC3339))

	return err
}

// FindDocumentByURL retrieves a document by its canonical URL.
func (s *DocumentService) FindDocumentByURL(ctx context.Context, url string) (*ampdocs.Document, error) {
	var doc ampdocs.Document
	var lastUpdated string

	err := s.db.QueryRowContext(ctx, `
		SELECT url, title, content, rendered_content, category, content_hash, last_updated
		FROM documents
		WHERE url = ?
	`, url).Scan(&doc.URL, &doc.Title, &doc.Content, &doc.RenderedContent,
		&doc.Category, &doc.ContentHash, &lastUpdated)

	if err == sql.ErrNoRows {
		return nil, ampdocs.Errorf(ampdocs.ENOTFOUND, "document %q not found", url)
	}
	if err != nil {
		return nil, err
	}

	doc.LastUpdated, err = parseRFC3339(lastUpdated, "last_updated")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter. Term matching
// is case-insensitive substring containment over title, content, and
// URL, mirroring what the search engine expects from its probes.
func (s *DocumentService) FindDocuments(ctx context.Context, filter ampdocs.DocumentFilter) ([]*ampdocs.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, title, content, rendered_content, category, content_hash, last_updated FROM documents WHERE 1=1")

	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Term != nil {
		term := strings.ToLower(*filter.Term)
		query.WriteString(" AND (instr(lower(title), ?) > 0 OR instr(lower(content), ?) > 0 OR instr(lower(url), ?) > 0)")
		args = append(args, term, term, term)
	}

	switch filter.SortBy {
	case ampdocs.SortByCategoryTitle:
		query.WriteString(" ORDER BY category ASC, title ASC")
	default:
		// URL as a tie-break keeps ordering stable when many documents
		// share a crawl timestamp.
		query.WriteString(" ORDER BY last_updated DESC, url ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*ampdocs.Document
	for rows.Next() {
		var doc ampdocs.Document
		var lastUpdated string

		if err := rows.Scan(&doc.URL, &doc.Title, &doc.Content, &doc.RenderedContent,
			&doc.Category, &doc.ContentHash, &lastUpdated); err != nil {
			return nil, err
		}

		doc.LastUpdated, err = parseRFC3339(lastUpdated, "last_updated")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// ListCategories returns the categories currently in use, sorted.
func (s *DocumentService) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT category FROM documents ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Stats summarizes the store contents.
func (s *DocumentService) Stats(ctx context.Context) (*ampdocs.Stats, error) {
	stats := &ampdocs.Stats{ByCategory: make(map[string]int)}

	var renderedBytes sql.NullInt64
	var lastUpdated sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(LENGTH(rendered_content)), MAX(last_updated)
		FROM documents
	`).Scan(&stats.Documents, &renderedBytes, &lastUpdated)
	if err != nil {
		return nil, err
	}
	stats.RenderedBytes = int(renderedBytes.Int64)

	if lastUpdated.Valid {
		stats.LastUpdated, err = parseRFC3339(lastUpdated.String, "last_updated")
		if err != nil {
			return nil, err
		}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM documents GROUP BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}

	return stats, rows.Err()
}
