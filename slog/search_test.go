package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/mock"
	ampslog "github.com/fwojciec/ampdocs/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query with intent and result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SearchService{
			SearchFn: func(ctx context.Context, query string, opts ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
				return &ampdocs.SearchResponse{
					Results: []ampdocs.SearchResult{
						{URL: "https://docs.amplify.aws/react/build-a-backend/auth/"},
						{URL: "https://docs.amplify.aws/react/build-a-backend/auth/set-up-auth/"},
					},
					Intent: ampdocs.IntentAuth,
				}, nil
			},
		}

		svc := ampslog.NewLoggingSearchService(inner, logger)
		resp, err := svc.Search(context.Background(), "set up authentication", ampdocs.SearchOptions{Limit: 10})

		require.NoError(t, err)
		assert.Len(t, resp.Results, 2)
		output := buf.String()
		assert.Contains(t, output, "search")
		assert.Contains(t, output, "query=\"set up authentication\"")
		assert.Contains(t, output, "intent=auth")
		assert.Contains(t, output, "results=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SearchService{
			SearchFn: func(ctx context.Context, query string, opts ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
				return nil, errors.New("engine unavailable")
			},
		}

		svc := ampslog.NewLoggingSearchService(inner, logger)
		_, err := svc.Search(context.Background(), "auth", ampdocs.SearchOptions{Limit: 10})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "search")
		assert.Contains(t, output, "err=\"engine unavailable\"")
	})
}
