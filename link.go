package ampdocs

// LinkPriority represents crawl priority (higher = more important).
// Navigation and table-of-contents links map the site's structure and
// are crawled before links found in page bodies.
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityFallback   LinkPriority = 10
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityTOC        LinkPriority = 110
)

// DiscoveredLink represents a URL queued for crawling.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Depth    int    // hops from the seed URL
	Text     string
	Source   string // "nav", "sidebar", "content", "footer"
}

// LinkExtractor extracts prioritized same-site links from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns discovered links with
	// priority. The baseURL resolves relative hrefs; fragment-only,
	// javascript: and mailto: links are skipped.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}
