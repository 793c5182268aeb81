package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// maxLoggedBody caps how much of a request body ends up in debug logs.
const maxLoggedBody = 2048

// RequestLogger logs requests and responses at debug level. Health and
// metrics probes are skipped.
func RequestLogger(log hclog.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/health") || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		if log.IsDebug() {
			var bodyBytes []byte
			if c.Request.Body != nil {
				bodyBytes, _ = io.ReadAll(c.Request.Body)
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
			if len(bodyBytes) > maxLoggedBody {
				bodyBytes = bodyBytes[:maxLoggedBody]
			}
			log.Debug("http request",
				"method", c.Request.Method,
				"path", path,
				"query", c.Request.URL.RawQuery,
				"body", string(bodyBytes),
				"ip", c.ClientIP(),
				"request_id", c.GetString("request_id"),
			)
		}

		c.Next()

		log.Debug("http response",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"size", c.Writer.Size(),
			"request_id", c.GetString("request_id"),
		)
	}
}

// ErrorLogger logs errors attached to the gin context.
func ErrorLogger(log hclog.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			log.Error("request error",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", err.Error(),
				"type", err.Type,
				"request_id", c.GetString("request_id"),
			)
		}
	}
}
