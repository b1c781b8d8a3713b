package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the request id on the wire.
	RequestIDHeader = "X-Request-ID"
	// ContextKeyRequestID is the echo context key the id is stored under.
	ContextKeyRequestID = "request_id"
)

// requestID returns the id attached by RequestID, "" when the middleware did
// not run.
func requestID(c echo.Context) string {
	rid, _ := c.Get(ContextKeyRequestID).(string)
	return rid
}

// RequestID attaches a request id to the context and echoes it in the
// response header. An id supplied by the caller is preserved.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set(ContextKeyRequestID, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
