package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houzhh15/callscribe/cmd/server/internal/summarize"
)

type summarizeRequest struct {
	Text         string `json:"text"`
	MaxSentences int    `json:"max_sentences"`
}

// HandleSummarize POST /summarize
// Summarizes arbitrary text without sending a notification.
func HandleSummarize(summarizer Summarizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req summarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		summary, err := summarizer.Summarize(c.Request.Context(), req.Text, req.MaxSentences)
		if err != nil {
			var svcErr *summarize.ServiceError
			switch {
			case errors.Is(err, summarize.ErrEmptyInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": "text is empty"})
			case errors.As(err, &svcErr):
				c.JSON(http.StatusBadGateway, gin.H{"error": svcErr.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"summary": summary})
	}
}
