package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/session"
)

const (
	// SessionCookie carries the visitor's session id
	SessionCookie = "sakhi_session"
	sessionKey    = "sakhiSession"
)

// Sessions attaches the visitor's Session to the request, creating one when
// the cookie is missing or unknown. State-changing requests are snapshotted
// afterwards.
func Sessions(m *session.Manager, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var id string
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie.Value
			}

			s, err := m.GetOrCreate(ctx, id)
			if err != nil {
				return err
			}
			if s.ID != id {
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    s.ID,
					HttpOnly: true,
					Secure:   secure,
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(sessionKey, s)

			err = next(c)

			if c.Request().Method != http.MethodGet {
				if saveErr := m.Save(ctx, s); saveErr != nil {
					c.Logger().Warn(saveErr)
				}
			}
			return err
		}
	}
}

// GetSession returns the Session attached by Sessions
func GetSession(c echo.Context) *session.Session {
	s, _ := c.Get(sessionKey).(*session.Session)
	return s
}
