package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houzhh15/callscribe/cmd/server/internal/graph"
	"github.com/houzhh15/callscribe/pkg/metrics"
)

// CallJoiner asks the platform to add the bot to a meeting.
type CallJoiner interface {
	JoinCall(ctx context.Context, meetingURL, callbackURL string) (graph.JoinResult, error)
}

type joinRequest struct {
	MeetingURL string `json:"meeting_url"`
}

// HandleJoinCall POST /join-call
// Requests that the bot join the referenced meeting; platform callbacks for
// the resulting call are delivered to callbackURL.
func HandleJoinCall(client CallJoiner, callbackURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req joinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.MeetingURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "meeting_url is required"})
			return
		}

		res, err := client.JoinCall(c.Request.Context(), req.MeetingURL, callbackURL)
		if err != nil {
			var platformErr *graph.PlatformError
			var authErr *graph.AuthError
			switch {
			case errors.Is(err, graph.ErrMeetingURLRequired):
				metrics.RecordJoinRequest("rejected")
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.As(err, &platformErr):
				metrics.RecordJoinRequest("rejected")
				c.JSON(http.StatusBadRequest, gin.H{"error": platformErr.Error()})
			case errors.As(err, &authErr):
				metrics.RecordJoinRequest("error")
				c.JSON(http.StatusBadGateway, gin.H{"error": authErr.Error()})
			default:
				metrics.RecordJoinRequest("error")
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		metrics.RecordJoinRequest("joined")
		resp := gin.H{"status": "joined", "message": "Bot joining call"}
		if res.PlatformCallID != "" {
			resp["call_id"] = res.PlatformCallID
		}
		c.JSON(http.StatusOK, resp)
	}
}
