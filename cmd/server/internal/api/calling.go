package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houzhh15/callscribe/cmd/server/internal/callbacks"
)

// HandleCallingWebhook POST /api/calling
// Receives asynchronous platform callback events. The response is always
// 200 {"status":"ok"}: a non-success answer would put the event into the
// platform's opaque retry loop, which application-level validation must
// never trigger.
func HandleCallingWebhook(router *callbacks.Router, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ev callbacks.Event
		if err := c.ShouldBindJSON(&ev); err != nil {
			log.Warn("unparseable callback payload", "error", err)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		router.Handle(ev)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
