package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ampdocs"
)

// Ensure LinkExtractor implements ampdocs.LinkExtractor at compile time.
var _ ampdocs.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts prioritized same-site links from documentation
// pages using CSS selectors for common page regions.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out.
//
// Priority order (highest to lowest):
//   - TOC: .toc, .table-of-contents, .sidebar, aside
//   - Navigation: nav, [role="navigation"], .nav, .menu, .navbar
//   - Content: main, [role="main"], article, .content, .documentation-content
//   - Footer: footer, .footer
//   - Fallback: any remaining anchor under the base URL path
func (s *LinkExtractor) ExtractLinks(html string, baseURL string) ([]ampdocs.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates
	seen := make(map[string]int)
	var links []ampdocs.DiscoveredLink

	extract := func(selector string, priority ampdocs.LinkPriority, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			// Skip non-HTTP links (javascript:, mailto:, etc.)
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			// Filter external links (exact host match, subdomains are filtered)
			if !isSameHost(base, resolved) {
				return
			}

			link := ampdocs.DiscoveredLink{
				URL:      resolved,
				Priority: priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   source,
			}

			if idx, ok := seen[resolved]; ok {
				// Update if this has higher priority
				if priority > links[idx].Priority {
					links[idx] = link
				}
			} else {
				// First occurrence - add to slice and track index
				seen[resolved] = len(links)
				links = append(links, link)
			}
		})
	}

	extract(`.toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]`, ampdocs.PriorityTOC, "toc")
	extract(`nav a[href], [role="navigation"] a[href], .nav a[href], .menu a[href], .navbar a[href]`, ampdocs.PriorityNavigation, "nav")
	extract(`main a[href], [role="main"] a[href], article a[href], .content a[href], .documentation-content a[href]`, ampdocs.PriorityContent, "content")
	extract(`footer a[href], .footer a[href]`, ampdocs.PriorityFooter, "footer")

	// Fallback: any anchor under the base URL path with low priority.
	// Pages with non-semantic markup still get their links discovered;
	// anchors already found above keep their higher priority.
	basePath := base.Path
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if !isSameHost(base, resolved) {
			return
		}

		// Fallback links are additionally filtered by base URL path prefix
		resolvedURL, err := url.Parse(resolved)
		if err != nil {
			return
		}
		if basePath != "" && !strings.HasPrefix(resolvedURL.Path, basePath) {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = len(links)
		links = append(links, ampdocs.DiscoveredLink{
			URL:      resolved,
			Priority: ampdocs.PriorityFallback,
			Text:     strings.TrimSpace(sel.Text()),
			Source:   "fallback",
		})
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL. Fragments are
// stripped so in-page anchors dedupe to their page. Returns an empty
// string for unparseable hrefs and for self-referential links.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base
// URL. Hosts must match exactly; subdomains count as different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
