package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const contextKey = "console_session"

// Guard gates protected views: requests without a stored credential are
// redirected to the login entry point, authenticated ones get their session
// attached to the echo context.
func Guard(m *Manager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			s, ok := m.Get(cookie.Value)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(contextKey, s)
			return next(c)
		}
	}
}

// FromContext returns the session attached by the guard.
func FromContext(c echo.Context) (*Session, bool) {
	s, ok := c.Get(contextKey).(*Session)
	return s, ok
}
