package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "flattens nested path with underscores",
			url:  "https://docs.amplify.aws/react/build-a-backend/auth/set-up-auth/",
			want: "react_build-a-backend_auth_set-up-auth.md",
		},
		{
			name: "single segment",
			url:  "https://docs.amplify.aws/react",
			want: "react.md",
		},
		{
			name: "root path becomes index",
			url:  "https://docs.amplify.aws/",
			want: "index.md",
		},
		{
			name: "root without trailing slash becomes index",
			url:  "https://docs.amplify.aws",
			want: "index.md",
		},
		{
			name: "ignores query string",
			url:  "https://docs.amplify.aws/react/reference?platform=js",
			want: "react_reference.md",
		},
		{
			name: "ignores fragment",
			url:  "https://docs.amplify.aws/react/reference#cli",
			want: "react_reference.md",
		},
		{
			name:    "invalid URL",
			url:     "://not-a-url",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.DocumentFilename(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ampdocs.EINVALID, ampdocs.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Story: Atomic Markdown Export
// The writer stages files in a temp directory and swaps them into
// place on Commit.

func TestWriter_StagesWritesInTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a writer targeting an output directory
	base := t.TempDir()
	w := fs.NewWriter(filepath.Join(base, "docs"))

	// When I write a document
	err := w.WriteDocument(context.Background(), &ampdocs.Document{
		URL:             "https://docs.amplify.aws/react/build-a-backend/auth/",
		Title:           "Set up Amplify Auth",
		Category:        ampdocs.CategoryAuthentication,
		RenderedContent: "Install the Amplify libraries.",
	})

	// Then no error occurs
	require.NoError(t, err)

	// And the file exists in the temp directory under its category
	tempPath := filepath.Join(base, "docs.tmp", "authentication", "react_build-a-backend_auth.md")
	_, err = os.Stat(tempPath)
	require.NoError(t, err, "file should exist in temp directory")

	// And the final directory does not exist yet
	_, err = os.Stat(filepath.Join(base, "docs"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestWriter_CommitMovesStagedFilesIntoPlace(t *testing.T) {
	t.Parallel()

	// Given a writer with a staged document
	base := t.TempDir()
	w := fs.NewWriter(filepath.Join(base, "docs"))
	err := w.WriteDocument(context.Background(), &ampdocs.Document{
		URL:      "https://docs.amplify.aws/react/start/",
		Title:    "Get Started",
		Category: ampdocs.CategoryGettingStarted,
	})
	require.NoError(t, err)

	// When I commit
	err = w.Commit()

	// Then no error occurs
	require.NoError(t, err)

	// And the file exists in the final directory
	finalPath := filepath.Join(base, "docs", "getting-started", "react_start.md")
	_, err = os.Stat(finalPath)
	require.NoError(t, err, "file should exist in final directory after commit")

	// And the temp directory is gone
	_, err = os.Stat(filepath.Join(base, "docs.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestWriter_CommitReplacesPreviousExport(t *testing.T) {
	t.Parallel()

	// Given a previous export containing a stale file
	base := t.TempDir()
	out := filepath.Join(base, "docs")
	staleDir := filepath.Join(out, "general")
	require.NoError(t, os.MkdirAll(staleDir, 0755))
	stalePath := filepath.Join(staleDir, "removed_page.md")
	require.NoError(t, os.WriteFile(stalePath, []byte("old"), 0644))

	// When a fresh export commits
	w := fs.NewWriter(out)
	err := w.WriteDocument(context.Background(), &ampdocs.Document{
		URL:      "https://docs.amplify.aws/react/deploy-and-host/",
		Title:    "Deploy and Host",
		Category: ampdocs.CategoryDeployment,
	})
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	// Then the new file is in place
	_, err = os.Stat(filepath.Join(out, "deployment", "react_deploy-and-host.md"))
	require.NoError(t, err)

	// And the stale file from the previous export is gone
	_, err = os.Stat(stalePath)
	assert.True(t, os.IsNotExist(err), "previous export should be replaced wholesale")
}

func TestWriter_AbortDiscardsStagedFiles(t *testing.T) {
	t.Parallel()

	// Given a writer with a staged document
	base := t.TempDir()
	w := fs.NewWriter(filepath.Join(base, "docs"))
	err := w.WriteDocument(context.Background(), &ampdocs.Document{
		URL:   "https://docs.amplify.aws/react/",
		Title: "Amplify Docs",
	})
	require.NoError(t, err)

	// When I abort
	err = w.Abort()

	// Then no error occurs
	require.NoError(t, err)

	// And the temp directory is cleaned up
	_, err = os.Stat(filepath.Join(base, "docs.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")

	// And no final directory was created
	_, err = os.Stat(filepath.Join(base, "docs"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestWriter_GroupsDocumentsByCategory(t *testing.T) {
	t.Parallel()

	// Given documents in different categories
	base := t.TempDir()
	out := filepath.Join(base, "docs")
	w := fs.NewWriter(out)
	ctx := context.Background()

	docs := []*ampdocs.Document{
		{
			URL:      "https://docs.amplify.aws/react/build-a-backend/storage/",
			Title:    "Storage",
			Category: ampdocs.CategoryStorage,
		},
		{
			URL:      "https://docs.amplify.aws/react/build-a-backend/data/",
			Title:    "Data",
			Category: ampdocs.CategoryAPIData,
		},
	}
	for _, doc := range docs {
		require.NoError(t, w.WriteDocument(ctx, doc))
	}
	require.NoError(t, w.Commit())

	// Then each document lands in its category directory
	_, err := os.Stat(filepath.Join(out, "storage", "react_build-a-backend_storage.md"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "api-data", "react_build-a-backend_data.md"))
	require.NoError(t, err)
}

func TestWriter_DefaultsToGeneralCategory(t *testing.T) {
	t.Parallel()

	// Given a document without a category
	base := t.TempDir()
	out := filepath.Join(base, "docs")
	w := fs.NewWriter(out)
	err := w.WriteDocument(context.Background(), &ampdocs.Document{
		URL:   "https://docs.amplify.aws/react/how-amplify-works/",
		Title: "How Amplify Works",
	})
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	// Then it lands in the general directory
	path := filepath.Join(out, "general", "react_how-amplify-works.md")
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// And the frontmatter records the general category
	assert.Contains(t, string(content), "category: general")
}

func TestWriter_IncludesFrontmatterAndSourceLine(t *testing.T) {
	t.Parallel()

	// Given a document with full metadata
	base := t.TempDir()
	out := filepath.Join(base, "docs")
	w := fs.NewWriter(out)
	err := w.WriteDocument(context.Background(), &ampdocs.Document{
		URL:             "https://docs.amplify.aws/react/build-a-backend/auth/set-up-auth/",
		Title:           "Set up Amplify Auth",
		Category:        ampdocs.CategoryAuthentication,
		RenderedContent: "Run `npx ampx sandbox` to deploy.",
		LastUpdated:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	// When I read the exported file
	path := filepath.Join(out, "authentication", "react_build-a-backend_auth_set-up-auth.md")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(content)

	// Then it has YAML frontmatter with the document metadata
	assert.Contains(t, got, "---\n")
	assert.Contains(t, got, "title: Set up Amplify Auth")
	assert.Contains(t, got, "url: https://docs.amplify.aws/react/build-a-backend/auth/set-up-auth/")
	assert.Contains(t, got, "category: authentication")
	assert.Contains(t, got, "last_updated: 2025-06-01T12:00:00Z")

	// And the body has a heading, a source link, and the content
	assert.Contains(t, got, "# Set up Amplify Auth")
	assert.Contains(t, got, "Source: [https://docs.amplify.aws/react/build-a-backend/auth/set-up-auth/](https://docs.amplify.aws/react/build-a-backend/auth/set-up-auth/)")
	assert.Contains(t, got, "Run `npx ampx sandbox` to deploy.")
}

func TestWriter_RejectsInvalidDocument(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	w := fs.NewWriter(filepath.Join(base, "docs"))

	// A document without a URL is rejected
	err := w.WriteDocument(context.Background(), &ampdocs.Document{Title: "No URL"})
	require.Error(t, err)
	assert.Equal(t, ampdocs.EINVALID, ampdocs.ErrorCode(err))

	// As is one with an unknown category
	err = w.WriteDocument(context.Background(), &ampdocs.Document{
		URL:      "https://docs.amplify.aws/react/",
		Category: "miscellaneous",
	})
	require.Error(t, err)
	assert.Equal(t, ampdocs.EINVALID, ampdocs.ErrorCode(err))
}

func TestWriter_NeutralizesPathTraversal(t *testing.T) {
	t.Parallel()

	// Given a document whose URL path tries to climb out of the tree
	base := t.TempDir()
	out := filepath.Join(base, "docs")
	w := fs.NewWriter(out)
	err := w.WriteDocument(context.Background(), &ampdocs.Document{
		URL:   "https://docs.amplify.aws/../../etc/passwd",
		Title: "Malicious",
	})
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	// Then flattening confines the file to its category directory
	_, err = os.Stat(filepath.Join(out, "general", ".._.._etc_passwd.md"))
	require.NoError(t, err, "traversal segments should be flattened into the filename")

	// And nothing escaped the output directory
	_, err = os.Stat(filepath.Join(base, "etc"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_CommitWithoutWritesCreatesEmptyDirectory(t *testing.T) {
	t.Parallel()

	// Given a writer that staged nothing
	base := t.TempDir()
	out := filepath.Join(base, "docs")
	w := fs.NewWriter(out)

	// When I commit
	err := w.Commit()

	// Then the output directory exists and is empty
	require.NoError(t, err)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
