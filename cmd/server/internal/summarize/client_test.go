package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houzhh15/callscribe/cmd/server/internal/config"
)

func newSummaryService(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(config.LanguageConfig{Endpoint: srv.URL, APIKey: "key-123"}), &calls
}

func TestSummarizeJoinsSentencesInServiceOrder(t *testing.T) {
	client, calls := newSummaryService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-123", r.Header.Get("Ocp-Apim-Subscription-Key"))

		var req summaryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Documents, 1)
		assert.Equal(t, 3, req.MaxSentenceCount)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summaryResponse{
			Documents: []documentResult{{
				ID: "1",
				Sentences: []sentenceSpan{
					{Text: "Team agreed on Q4 budget.", RankScore: 0.98},
					{Text: "Follow-up scheduled for Friday.", RankScore: 0.71},
				},
			}},
		})
	})

	summary, err := client.Summarize(context.Background(), "Team agreed on Q4 budget. Follow-up scheduled for Friday. Minor chit-chat.", 3)
	require.NoError(t, err)

	assert.Equal(t, "Team agreed on Q4 budget. Follow-up scheduled for Friday.", summary)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSummarizeEmptyInputSkipsService(t *testing.T) {
	client, calls := newSummaryService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("service must not be called for empty input")
	})

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := client.Summarize(context.Background(), text, 5)
		require.ErrorIs(t, err, ErrEmptyInput)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestSummarizeDefaultSentenceCount(t *testing.T) {
	client, _ := newSummaryService(t, func(w http.ResponseWriter, r *http.Request) {
		var req summaryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultMaxSentences, req.MaxSentenceCount)
		_ = json.NewEncoder(w).Encode(summaryResponse{})
	})

	_, err := client.Summarize(context.Background(), "some transcript", 0)
	require.NoError(t, err)
}

func TestSummarizeServiceErrorNotRetried(t *testing.T) {
	client, calls := newSummaryService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":"429","message":"rate limited"}}`))
	})

	_, err := client.Summarize(context.Background(), "some transcript", 5)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusTooManyRequests, svcErr.StatusCode)
	assert.Contains(t, svcErr.Body, "rate limited")
	assert.Equal(t, int32(1), calls.Load())
}
