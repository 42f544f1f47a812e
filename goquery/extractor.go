package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ampdocs"
	"golang.org/x/net/html"
)

// contentSelectors identify the main content region of a documentation
// page, checked in order. The first selector with a match wins.
var contentSelectors = []string{
	"main",
	`[role="main"]`,
	".content",
	"#content",
	"article",
	".documentation-content",
}

// Ensure Extractor implements ampdocs.Extractor at compile time.
var _ ampdocs.Extractor = (*Extractor)(nil)

// Extractor extracts main content from documentation pages using CSS
// selectors for common content regions.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Returns
// ENOTFOUND when none of the content selectors match, so callers can
// fall back to a different extractor.
func (e *Extractor) Extract(rawHTML string) (*ampdocs.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	var region *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			region = sel
			break
		}
	}
	if region == nil {
		return nil, ampdocs.Errorf(ampdocs.ENOTFOUND, "no content region found")
	}

	contentHTML, err := goquery.OuterHtml(region)
	if err != nil {
		return nil, ampdocs.Errorf(ampdocs.EINTERNAL, "failed to render content: %v", err)
	}

	return &ampdocs.ExtractResult{
		Title:       extractTitle(doc),
		ContentHTML: contentHTML,
		Text:        extractText(region),
	}, nil
}

// extractTitle returns the page title, preferring the first h1 heading
// over the document title element.
func extractTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractText returns the region's text with each text node trimmed and
// on its own line. Selection.Text would run adjacent blocks together
// ("Get startedInstall the CLI"), which breaks substring matching on
// the stored content.
func extractText(sel *goquery.Selection) string {
	var lines []string
	for _, node := range sel.Nodes {
		collectText(node, &lines)
	}
	return strings.Join(lines, "\n")
}

func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*lines = append(*lines, text)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}
