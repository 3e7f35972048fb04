package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "session_id"
	sessionContextKey = "session_key"
	sessionMaxAge     = 14 * 24 * time.Hour
)

// Session assigns every visitor a session key kept in the session_id cookie.
// Unparseable cookie values are replaced.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionKey := ""
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionKey = cookie.Value
				}
			}

			if sessionKey == "" {
				sessionKey = uuid.New().String()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionKey,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(sessionContextKey, sessionKey)
			return next(c)
		}
	}
}

// SessionKey returns the key assigned by Session, or an empty string outside of it
func SessionKey(c echo.Context) string {
	sessionKey, _ := c.Get(sessionContextKey).(string)
	return sessionKey
}
