package handlers

import (
	"net/http"
	"time"

	"clinicdesk/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const streamKeepAlive = 25 * time.Second

// NotificationHandler streams new-appointment toasts to admin dashboards.
type NotificationHandler struct {
	Hub       *notification.Hub
	KeepAlive time.Duration
}

func NewNotificationHandler(hub *notification.Hub) *NotificationHandler {
	return &NotificationHandler{Hub: hub, KeepAlive: streamKeepAlive}
}

// StreamHandler handles GET /api/admin/notifications/stream as server-sent events.
// The stream ends when the client disconnects or the hub drops a slow receiver.
func (h *NotificationHandler) StreamHandler(c *gin.Context) {
	id, toasts, cancel := h.Hub.Subscribe()
	defer cancel()

	logger := getLogger(c).With(zap.String("subscriber", id))
	logger.Debug("notification stream opened")
	defer logger.Debug("notification stream closed")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.SSEvent("ready", gin.H{"subscriber": id})
	c.Writer.Flush()

	keepAlive := h.KeepAlive
	if keepAlive <= 0 {
		keepAlive = streamKeepAlive
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case toast, ok := <-toasts:
			if !ok {
				return
			}
			c.SSEvent("toast", toast)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			c.Writer.Flush()
		}
	}
}
