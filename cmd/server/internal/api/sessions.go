package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houzhh15/callscribe/cmd/server/internal/domain/sessions"
)

type sessionSummary struct {
	ID           string   `json:"id"`
	Status       string   `json:"status"`
	Participants []string `json:"participants"`
	Fragments    int      `json:"fragments"`
	CreatedAt    string   `json:"created_at"`
}

// HandleListSessions GET /api/v1/sessions
// Operator view of all in-flight call sessions.
func HandleListSessions(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := store.List()
		out := make([]sessionSummary, 0, len(list))
		for _, sess := range list {
			out = append(out, sessionSummary{
				ID:           sess.ID,
				Status:       string(sess.Status),
				Participants: sess.Participants,
				Fragments:    len(sess.Fragments),
				CreatedAt:    sess.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			})
		}
		c.JSON(http.StatusOK, gin.H{"sessions": out})
	}
}

// HandleGetTranscript GET /api/v1/sessions/:id/transcript
// Returns the accumulated transcript for a session. An unknown id yields an
// empty transcript, not an error — callbacks may simply not have arrived yet.
func HandleGetTranscript(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		c.JSON(http.StatusOK, gin.H{
			"session_id": id,
			"transcript": store.Transcript(id),
		})
	}
}
