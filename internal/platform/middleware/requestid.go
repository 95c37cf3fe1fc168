package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	maxRequestIDLen = 128
)

// RequestID propagates an inbound X-Request-ID or assigns a new UUID, and
// keeps the id in the context for the access log. Oversized inbound ids are
// replaced.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: RequestIDHeader,
		RequestIDHandler: func(c echo.Context, rid string) {
			if len(rid) > maxRequestIDLen {
				rid = uuid.NewString()
				c.Response().Header().Set(RequestIDHeader, rid)
			}
			c.Set(requestIDKey, rid)
		},
	})
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c echo.Context) string {
	rid, _ := c.Get(requestIDKey).(string)
	return rid
}
