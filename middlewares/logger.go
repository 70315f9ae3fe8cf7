package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger writes one access log line per request.
func Logger(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"task":    "http",
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if userID, ok := CurrentUserID(c); ok {
			fields["user_id"] = userID
		}
		entry := logger.WithFields(fields)
		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.String())
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		default:
			entry.Info("request")
		}
	}
}
