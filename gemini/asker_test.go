package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/gemini"
	"github.com/fwojciec/ampdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_Ask_ReturnsErrorWhenNoResults(t *testing.T) {
	t.Parallel()

	search := &mock.SearchService{
		SearchFn: func(context.Context, string, ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
			return &ampdocs.SearchResponse{}, nil
		},
	}

	asker := gemini.NewAsker(nil, nil, search) // nil client ok for this test

	_, err := asker.Ask(context.Background(), "how do I add auth?")

	require.Error(t, err)
	assert.Equal(t, ampdocs.ENOTFOUND, ampdocs.ErrorCode(err))
	assert.Contains(t, ampdocs.ErrorMessage(err), "no documentation")
}

func TestAsker_Ask_PropagatesSearchError(t *testing.T) {
	t.Parallel()

	expectedErr := ampdocs.Errorf(ampdocs.EINTERNAL, "search failed")
	search := &mock.SearchService{
		SearchFn: func(context.Context, string, ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
			return nil, expectedErr
		},
	}

	asker := gemini.NewAsker(nil, nil, search)

	_, err := asker.Ask(context.Background(), "how do I add auth?")

	require.Error(t, err)
	assert.Equal(t, ampdocs.EINTERNAL, ampdocs.ErrorCode(err))
	assert.Contains(t, ampdocs.ErrorMessage(err), "search failed")
}

func TestAsker_Ask_PropagatesDocumentServiceError(t *testing.T) {
	t.Parallel()

	search := &mock.SearchService{
		SearchFn: func(context.Context, string, ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
			return &ampdocs.SearchResponse{
				Results: []ampdocs.SearchResult{{URL: "https://docs.amplify.aws/react/build-a-backend/auth/"}},
			}, nil
		},
	}
	expectedErr := ampdocs.Errorf(ampdocs.EINTERNAL, "database error")
	docs := &mock.DocumentService{
		FindDocumentByURLFn: func(context.Context, string) (*ampdocs.Document, error) {
			return nil, expectedErr
		},
	}

	asker := gemini.NewAsker(nil, docs, search)

	_, err := asker.Ask(context.Background(), "how do I add auth?")

	require.Error(t, err)
	assert.Equal(t, ampdocs.EINTERNAL, ampdocs.ErrorCode(err))
	assert.Contains(t, ampdocs.ErrorMessage(err), "database error")
}

func TestAsker_Ask_ReturnsNotFoundWhenHitsMissingFromStore(t *testing.T) {
	t.Parallel()

	// A hit can disappear between search and load; the asker skips it
	// rather than failing, and reports not found when nothing is left.
	search := &mock.SearchService{
		SearchFn: func(context.Context, string, ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
			return &ampdocs.SearchResponse{
				Results: []ampdocs.SearchResult{{URL: "https://docs.amplify.aws/react/removed-page/"}},
			}, nil
		},
	}
	docs := &mock.DocumentService{
		FindDocumentByURLFn: func(_ context.Context, url string) (*ampdocs.Document, error) {
			return nil, ampdocs.Errorf(ampdocs.ENOTFOUND, "document not found: %s", url)
		},
	}

	asker := gemini.NewAsker(nil, docs, search)

	_, err := asker.Ask(context.Background(), "how do I add auth?")

	require.Error(t, err)
	assert.Equal(t, ampdocs.ENOTFOUND, ampdocs.ErrorCode(err))
}

func TestAsker_Ask_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil, nil, nil)

	_, err := asker.Ask(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, ampdocs.EINVALID, ampdocs.ErrorCode(err))
	assert.Contains(t, ampdocs.ErrorMessage(err), "question required")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Amplify Gen 2")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildUserPrompt_ContainsDocumentation(t *testing.T) {
	t.Parallel()

	docs := []*ampdocs.Document{
		{
			URL:             "https://docs.amplify.aws/react/build-a-backend/auth/",
			Title:           "Set up Amplify Auth",
			RenderedContent: "Use `defineAuth` to configure authentication.",
		},
	}

	prompt := gemini.BuildUserPrompt(docs, "How do I add auth?")

	assert.Contains(t, prompt, "<documents>")
	assert.Contains(t, prompt, "Set up Amplify Auth")
	assert.Contains(t, prompt, "Use `defineAuth` to configure authentication.")
	assert.Contains(t, prompt, "<source>https://docs.amplify.aws/react/build-a-backend/auth/</source>")
	assert.Contains(t, prompt, "</documents>")
}

func TestBuildUserPrompt_ContainsQuestion(t *testing.T) {
	t.Parallel()

	docs := []*ampdocs.Document{{Title: "Doc", RenderedContent: "Content"}}

	prompt := gemini.BuildUserPrompt(docs, "How do I deploy?")

	assert.Contains(t, prompt, "Question: How do I deploy?")
}

func TestBuildUserPrompt_FallsBackToPlainContent(t *testing.T) {
	t.Parallel()

	docs := []*ampdocs.Document{
		{Title: "Doc", Content: "Plain text only."},
	}

	prompt := gemini.BuildUserPrompt(docs, "question")

	assert.Contains(t, prompt, "Plain text only.")
}

func TestBuildUserPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	docs := []*ampdocs.Document{{Title: "Doc", RenderedContent: "Content"}}

	prompt := gemini.BuildUserPrompt(docs, "question")

	assert.NotContains(t, prompt, "You are a helpful assistant")
}
