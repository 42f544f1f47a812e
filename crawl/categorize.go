package crawl

import (
	"strings"

	"github.com/fwojciec/ampdocs"
)

// categoryRules maps URL path markers to categories. Rules are checked
// in order and the first match wins, so more specific markers (build-ui,
// troubleshooting) come before broad ones (data, deploy). A URL matching
// no rule falls back to CategoryGeneral.
var categoryRules = []struct {
	category string
	markers  []string
}{
	{ampdocs.CategoryFrontend, []string{"build-ui", "ui.docs.amplify", "components", "theming"}},
	{ampdocs.CategoryTroubleshooting, []string{"troubleshooting"}},
	{ampdocs.CategoryAuthentication, []string{"auth"}},
	{ampdocs.CategoryStorage, []string{"storage"}},
	{ampdocs.CategoryAPIData, []string{"data", "api", "graphql"}},
	{ampdocs.CategoryDeployment, []string{"deploy", "host"}},
	{ampdocs.CategoryGettingStarted, []string{"start", "quickstart"}},
	{ampdocs.CategoryBackend, []string{"build-a-backend"}},
	{ampdocs.CategoryReference, []string{"reference"}},
	{ampdocs.CategoryGuides, []string{"guides"}},
}

// CategorizeURL maps a documentation URL to its category based on
// path markers.
func CategorizeURL(rawURL string) string {
	url := strings.ToLower(rawURL)
	for _, rule := range categoryRules {
		for _, marker := range rule.markers {
			if strings.Contains(url, marker) {
				return rule.category
			}
		}
	}
	return ampdocs.CategoryGeneral
}
