package http

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// CustomLoggerMiddleware logs one structured line per request with the request id
// assigned by the requestid middleware.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := redactQuery(c.Request.URL)

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("http request", attrs...)
		case status >= 400:
			logger.Warn("http request", attrs...)
		default:
			logger.Info("http request", attrs...)
		}
	}
}

// redactedParams are query parameters whose values carry plaintext SKUs.
var redactedParams = []string{"sku"}

// redactQuery returns the raw query with SKU filter values masked.
func redactQuery(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}

	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "[UNPARSEABLE]"
	}

	redacted := false
	for _, name := range redactedParams {
		if _, ok := values[name]; ok {
			values.Set(name, "[REDACTED]")
			redacted = true
		}
	}
	if !redacted {
		return u.RawQuery
	}
	return values.Encode()
}
