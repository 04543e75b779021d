package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader is the HTTP header carrying the request trace ID
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey is the echo context key where the trace ID is stored
	TraceIDContextKey = "trace_id"
)

// RequestID assigns a trace ID to every request. An incoming X-Trace-ID
// header is honored so upstream proxies can correlate logs; otherwise a
// fresh UUID is generated. The ID is echoed back on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)

			return next(c)
		}
	}
}

// GetTraceID returns the trace ID for the current request, or "" when the
// RequestID middleware did not run.
func GetTraceID(c echo.Context) string {
	if traceID, ok := c.Get(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}
