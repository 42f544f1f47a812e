//go:build integration

package rod_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/ampdocs/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Integration_AmplifyDocs(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(30 * time.Second))
	require.NoError(t, err)
	defer fetcher.Close()

	// docs.amplify.aws is a Next.js app; much of the page only exists
	// after hydration
	html, err := fetcher.Fetch(ctx, "https://docs.amplify.aws/react/")
	require.NoError(t, err)
	assert.NotEmpty(t, html, "expected non-empty HTML response")

	// Verify HTML document structure
	assert.True(t, strings.HasPrefix(strings.TrimSpace(strings.ToLower(html)), "<!doctype html>") ||
		strings.HasPrefix(strings.TrimSpace(strings.ToLower(html)), "<html"),
		"expected valid HTML document start")
	assert.Contains(t, html, "<body", "expected body tag")
	assert.Contains(t, html, "</html>", "expected closing html tag")

	// Verify rendered documentation content
	assert.Contains(t, html, "Amplify", "expected Amplify branding in rendered page")

	t.Logf("Fetched %d bytes from docs.amplify.aws/react/", len(html))
}

func TestFetcher_Integration_AmplifyQuickstart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(30 * time.Second))
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(ctx, "https://docs.amplify.aws/react/start/quickstart/")
	require.NoError(t, err)
	assert.NotEmpty(t, html, "expected non-empty HTML response")

	// Verify rendered navigation and page content
	assert.Contains(t, html, "Quickstart", "expected rendered page title")
	assert.Contains(t, html, "<main", "expected main content region")

	t.Logf("Fetched %d bytes from docs.amplify.aws/react/start/quickstart/", len(html))
}
