// Package gemini answers questions about the stored documentation
// using the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/ampdocs"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used unless overridden with
// WithModel.
const DefaultModel = "gemini-2.5-flash"

// contextDocs caps how many search hits are loaded into the prompt.
const contextDocs = 5

// Ensure Asker implements ampdocs.Asker at compile time.
var _ ampdocs.Asker = (*Asker)(nil)

// Asker implements ampdocs.Asker using Google Gemini. It grounds each
// answer in the stored documentation: the question is run through the
// search engine and the top hits become the prompt context.
type Asker struct {
	client *genai.Client
	docs   ampdocs.DocumentService
	search ampdocs.SearchService
	model  string
}

// Option configures an Asker.
type Option func(*Asker)

// WithModel overrides the Gemini model.
func WithModel(model string) Option {
	return func(a *Asker) {
		if model != "" {
			a.model = model
		}
	}
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, docs ampdocs.DocumentService, search ampdocs.SearchService, opts ...Option) *Asker {
	a := &Asker{
		client: client,
		docs:   docs,
		search: search,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask answers a natural language question about the documentation.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", ampdocs.Errorf(ampdocs.EINVALID, "question required")
	}

	resp, err := a.search.Search(ctx, question, ampdocs.SearchOptions{Limit: contextDocs})
	if err != nil {
		return "", err
	}

	// Search results carry snippets only; load the full documents.
	docs := make([]*ampdocs.Document, 0, len(resp.Results))
	for _, res := range resp.Results {
		doc, err := a.docs.FindDocumentByURL(ctx, res.URL)
		if err != nil {
			if ampdocs.ErrorCode(err) == ampdocs.ENOTFOUND {
				continue
			}
			return "", err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return "", ampdocs.Errorf(ampdocs.ENOTFOUND, "no documentation found for question %q", question)
	}

	prompt := BuildUserPrompt(docs, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", ampdocs.Errorf(ampdocs.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about AWS Amplify Gen 2 documentation. Answer based only on the documentation provided. Amplify Gen 2 is TypeScript-first and code-first; Gen 1 CLI commands such as amplify add do not apply. If the answer is not in the documentation, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing documentation and
// question.
func BuildUserPrompt(docs []*ampdocs.Document, question string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.URL
		}
		content := doc.RenderedContent
		if content == "" {
			content = doc.Content
		}
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<source>%s</source>\n", doc.URL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
