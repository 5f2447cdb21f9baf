package graph

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
)

// joinTimeout bounds the call-creation request; the platform answers join
// requests quickly or not at all.
const joinTimeout = 10 * time.Second

const maxErrorBodyBytes = 64 << 10

// TokenSource yields a valid platform access token.
type TokenSource interface {
	GetToken(ctx context.Context) (AccessToken, error)
}

// CallClient issues call-join requests against the conferencing platform.
type CallClient struct {
	tokens      TokenSource
	endpoint    string
	displayName string
	appID       string
	httpClient  *http.Client
}

// NewCallClient creates a client for the platform's call-creation endpoint.
func NewCallClient(cfg config.GraphConfig, tokens TokenSource) *CallClient {
	return &CallClient{
		tokens:      tokens,
		endpoint:    cfg.CallsEndpoint,
		displayName: cfg.BotDisplayName,
		appID:       cfg.ClientID,
		httpClient:  &http.Client{Timeout: joinTimeout},
	}
}

// JoinCall asks the platform to add the bot to the referenced meeting, with
// callbacks delivered to callbackURL. A non-2xx answer surfaces as a
// PlatformError carrying the response body; joins are not retried because the
// platform offers no de-duplication key.
func (c *CallClient) JoinCall(ctx context.Context, meetingURL, callbackURL string) (JoinResult, error) {
	if strings.TrimSpace(meetingURL) == "" {
		return JoinResult{}, ErrMeetingURLRequired
	}

	tok, err := c.tokens.GetToken(ctx)
	if err != nil {
		return JoinResult{}, err
	}

	payload := newCallRequest(c.displayName, c.appID, callbackURL)
	body, err := json.Marshal(payload)
	if err != nil {
		return JoinResult{}, fmt.Errorf("marshal join payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return JoinResult{}, fmt.Errorf("build join request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return JoinResult{}, fmt.Errorf("call platform: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return JoinResult{Status: JoinStatusRejected}, &PlatformError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var call callResponse
	// the call id is informational; an unparseable success body is still a join
	_ = json.Unmarshal(respBody, &call)

	return JoinResult{Status: JoinStatusJoined, PlatformCallID: call.ID}, nil
}
