package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/houzhh15/callscribe/cmd/server/internal/config"
	"github.com/houzhh15/callscribe/pkg/metrics"
)

// DefaultMaxSentences is used when the caller does not request a sentence count.
const DefaultMaxSentences = 5

const (
	summarizeTimeout    = 15 * time.Second
	extractSummaryPath  = "/text/analytics/v3.1/extractSummary"
	subscriptionKeyName = "Ocp-Apim-Subscription-Key"
)

// Client calls the external extractive summarization service. One request per
// Summarize call, no retries.
type Client struct {
	endpoint     string
	apiKey       string
	maxSentences int
	httpClient   *http.Client
}

// NewClient creates a summarization client for the configured endpoint.
func NewClient(cfg config.LanguageConfig) *Client {
	maxSentences := cfg.MaxSentences
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	return &Client{
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:       cfg.APIKey,
		maxSentences: maxSentences,
		httpClient:   &http.Client{Timeout: summarizeTimeout},
	}
}

// Summarize condenses text into at most maxSentences extracted sentences,
// joined by a single space in the order the service returned them. A
// non-positive maxSentences falls back to the configured default. Empty or
// whitespace-only text fails with ErrEmptyInput before any network call.
func (c *Client) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	if maxSentences <= 0 {
		maxSentences = c.maxSentences
	}

	payload := summaryRequest{
		Documents:        []summaryDocument{{ID: "1", Text: text}},
		MaxSentenceCount: maxSentences,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal summary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+extractSummaryPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(subscriptionKeyName, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveSummarizeDuration(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("call summarization service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read summary response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServiceError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed summaryResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse summary response: %w", err)
	}

	var parts []string
	for _, doc := range parsed.Documents {
		for _, sentence := range doc.Sentences {
			parts = append(parts, sentence.Text)
		}
	}
	return strings.Join(parts, " "), nil
}
