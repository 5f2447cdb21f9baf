package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houzhh15/callscribe/cmd/server/internal/domain/sessions"
	"github.com/houzhh15/callscribe/cmd/server/internal/notify"
	"github.com/houzhh15/callscribe/cmd/server/internal/summarize"
)

// fakeSummarizer returns a canned summary and records its inputs.
type fakeSummarizer struct {
	summary string
	err     error
	inputs  []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	f.inputs = append(f.inputs, text)
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

// fakeNotifier records notification attempts.
type notifyCall struct {
	recipient    string
	meetingID    string
	summary      string
	participants []string
	transcript   string
}

type fakeNotifier struct {
	err   error
	calls []notifyCall
}

func (f *fakeNotifier) Notify(ctx context.Context, recipient, meetingID, summary string, participants []string, transcript string) error {
	f.calls = append(f.calls, notifyCall{recipient, meetingID, summary, participants, transcript})
	if f.err != nil {
		// real dispatcher validates before the transport; mirror that here
		return f.err
	}
	return nil
}

func newWebhookTestRouter(store *sessions.Store, s Summarizer, n Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/teams", HandleTeamsWebhook(store, s, n))
	return r
}

func TestTeamsWebhookSummarizeAndNotify(t *testing.T) {
	store := sessions.NewStore()
	summarizer := &fakeSummarizer{summary: "Team agreed on Q4 budget."}
	notifier := &fakeNotifier{}
	r := newWebhookTestRouter(store, summarizer, notifier)

	w := postJSON(r, "/webhook/teams", `{
		"transcript": "Team agreed on Q4 budget. Meeting adjourned.",
		"meeting_id": "MEET-12345",
		"participants": ["Ada", "Grace"],
		"recipient_email": "pm@example.com"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Contains(t, w.Body.String(), "Team agreed on Q4 budget.")

	require.Len(t, notifier.calls, 1)
	call := notifier.calls[0]
	assert.Equal(t, "pm@example.com", call.recipient)
	assert.Equal(t, "MEET-12345", call.meetingID)
	assert.Equal(t, "Team agreed on Q4 budget.", call.summary)
	assert.Equal(t, []string{"Ada", "Grace"}, call.participants)
}

func TestTeamsWebhookFallsBackToStoredSession(t *testing.T) {
	store := sessions.NewStore()
	store.AppendFragment("MEET-9", "Hello")
	store.AppendFragment("MEET-9", "World")
	store.AddParticipant("MEET-9", "Ada")

	summarizer := &fakeSummarizer{summary: "Hello world recap."}
	notifier := &fakeNotifier{}
	r := newWebhookTestRouter(store, summarizer, notifier)

	w := postJSON(r, "/webhook/teams", `{
		"meeting_id": "MEET-9",
		"recipient_email": "pm@example.com"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, summarizer.inputs, 1)
	assert.Equal(t, "Hello World", summarizer.inputs[0])
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, []string{"Ada"}, notifier.calls[0].participants)
	assert.Equal(t, "Hello World", notifier.calls[0].transcript)
}

func TestTeamsWebhookEmptyTranscript(t *testing.T) {
	store := sessions.NewStore()
	summarizer := &fakeSummarizer{err: summarize.ErrEmptyInput}
	notifier := &fakeNotifier{}
	r := newWebhookTestRouter(store, summarizer, notifier)

	w := postJSON(r, "/webhook/teams", `{"meeting_id":"NO-SUCH","recipient_email":"pm@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "transcript is empty")
	assert.Empty(t, notifier.calls)
}

func TestTeamsWebhookSummarizerFailure(t *testing.T) {
	store := sessions.NewStore()
	summarizer := &fakeSummarizer{err: &summarize.ServiceError{StatusCode: 500, Body: "boom"}}
	notifier := &fakeNotifier{}
	r := newWebhookTestRouter(store, summarizer, notifier)

	w := postJSON(r, "/webhook/teams", `{"transcript":"some text","recipient_email":"pm@example.com"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	// no notification goes out when summarization fails
	assert.Empty(t, notifier.calls)
}

func TestTeamsWebhookMissingRecipient(t *testing.T) {
	store := sessions.NewStore()
	summarizer := &fakeSummarizer{summary: "recap"}
	notifier := &fakeNotifier{err: notify.ErrNoRecipient}
	r := newWebhookTestRouter(store, summarizer, notifier)

	w := postJSON(r, "/webhook/teams", `{"transcript":"some text"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "recipient_email is required")
}

func TestTeamsWebhookDeliveryFailureNotRetried(t *testing.T) {
	store := sessions.NewStore()
	summarizer := &fakeSummarizer{summary: "recap"}
	notifier := &fakeNotifier{err: &notify.DeliveryError{Cause: assert.AnError}}
	r := newWebhookTestRouter(store, summarizer, notifier)

	w := postJSON(r, "/webhook/teams", `{"transcript":"some text","recipient_email":"pm@example.com"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error")
	// exactly one delivery attempt
	assert.Len(t, notifier.calls, 1)
}
