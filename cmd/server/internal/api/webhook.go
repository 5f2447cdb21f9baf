package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/houzhh15/callscribe/cmd/server/internal/domain/sessions"
	"github.com/houzhh15/callscribe/cmd/server/internal/notify"
	"github.com/houzhh15/callscribe/cmd/server/internal/summarize"
	"github.com/houzhh15/callscribe/pkg/metrics"
)

// Summarizer condenses a transcript into a few sentences.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxSentences int) (string, error)
}

// Notifier delivers a formatted call summary to one recipient.
type Notifier interface {
	Notify(ctx context.Context, recipient, meetingID, summary string, participants []string, transcript string) error
}

type summarizeNotifyRequest struct {
	Transcript     string   `json:"transcript"`
	MeetingID      string   `json:"meeting_id"`
	Participants   []string `json:"participants"`
	RecipientEmail string   `json:"recipient_email"`
}

// HandleTeamsWebhook POST /webhook/teams
// Summarizes a call transcript and emails the result. When the request omits
// the transcript, the stored session for meeting_id supplies it (and the
// participant list), which is how a recorded call gets summarized after the
// call_ended callback.
func HandleTeamsWebhook(store *sessions.Store, summarizer Summarizer, notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req summarizeNotifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		transcript := req.Transcript
		participants := req.Participants
		if strings.TrimSpace(transcript) == "" && req.MeetingID != "" {
			transcript = store.Transcript(req.MeetingID)
			if len(participants) == 0 {
				if sess, ok := store.Get(req.MeetingID); ok {
					participants = sess.Participants
				}
			}
		}

		summary, err := summarizer.Summarize(c.Request.Context(), transcript, 0)
		if err != nil {
			var svcErr *summarize.ServiceError
			switch {
			case errors.Is(err, summarize.ErrEmptyInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": "transcript is empty"})
			case errors.As(err, &svcErr):
				c.JSON(http.StatusBadGateway, gin.H{"error": svcErr.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		err = notifier.Notify(c.Request.Context(), req.RecipientEmail, req.MeetingID, summary, participants, transcript)
		if err != nil {
			var deliveryErr *notify.DeliveryError
			switch {
			case errors.Is(err, notify.ErrNoRecipient):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.As(err, &deliveryErr):
				metrics.RecordNotification("failed")
				c.JSON(http.StatusBadGateway, gin.H{"error": deliveryErr.Error()})
			default:
				metrics.RecordNotification("failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		metrics.RecordNotification("sent")
		c.JSON(http.StatusOK, gin.H{"status": "success", "summary": summary})
	}
}
