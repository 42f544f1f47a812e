package search_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/search"
	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("short content returns whole text", func(t *testing.T) {
		t.Parallel()

		got := search.Snippet("A short page.", []string{"missing"})

		assert.Equal(t, "A short page.", got)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		got := search.Snippet("spread   over\n\nlines", nil)

		assert.Equal(t, "spread over lines", got)
	})

	t.Run("centers on the first matched term", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("padding ", 60) + "cognito sits here" + strings.Repeat(" more", 60)

		got := search.Snippet(content, []string{"cognito"})

		assert.Contains(t, got, "cognito sits here")
		assert.True(t, strings.HasPrefix(got, "..."))
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("earlier terms win over later ones", func(t *testing.T) {
		t.Parallel()

		content := "signin mentioned early. " + strings.Repeat("filler ", 80) + "cognito mentioned late."

		got := search.Snippet(content, []string{"signin", "cognito"})

		assert.Contains(t, got, "signin mentioned early")
	})

	t.Run("falls back to the head when nothing matches", func(t *testing.T) {
		t.Parallel()

		content := "The opening sentence. " + strings.Repeat("filler ", 100)

		got := search.Snippet(content, []string{"absent"})

		assert.True(t, strings.HasPrefix(got, "The opening sentence."))
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("empty content yields empty snippet", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, search.Snippet("", []string{"term"}))
	})
}

func TestHints(t *testing.T) {
	t.Parallel()

	t.Run("timestamps intent always carries its guidance", func(t *testing.T) {
		t.Parallel()

		qc := search.Normalize("why is createdat missing")

		hints := search.Hints(qc, 3, nil)

		assert.Len(t, hints, 1)
		assert.Contains(t, hints[0], "createdAt and updatedAt automatically")
	})

	t.Run("imports intent points at amplify_outputs", func(t *testing.T) {
		t.Parallel()

		qc := search.Normalize("import aws-exports")

		hints := search.Hints(qc, 1, nil)

		assert.Contains(t, hints[0], "amplify_outputs.json")
	})

	t.Run("general intent with results has no hints", func(t *testing.T) {
		t.Parallel()

		qc := search.Normalize("hosting")

		assert.Empty(t, search.Hints(qc, 2, nil))
	})

	t.Run("zero results suggests broadening", func(t *testing.T) {
		t.Parallel()

		qc := search.Normalize("hosting")

		hints := search.Hints(qc, 0, nil)

		assert.Len(t, hints, 1)
		assert.Contains(t, hints[0], "broader terms")
	})

	t.Run("struggling session appends its hint last", func(t *testing.T) {
		t.Parallel()

		session := ampdocs.NewSession(5)
		for i := 0; i < 3; i++ {
			session.Record(ampdocs.SessionEntry{Query: "q", FoundResults: false})
		}
		qc := search.Normalize("hosting")

		hints := search.Hints(qc, 0, session)

		assert.Len(t, hints, 2)
		assert.Contains(t, hints[1], "came up empty")
	})
}
