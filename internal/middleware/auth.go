package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

const (
	// FirebaseCookie holds the Firebase session cookie
	FirebaseCookie = "session"
	// DemoUserCookie holds the identifier typed into the demo login form
	DemoUserCookie = "sakhi_user"
)

// SessionVerifier checks a Firebase session cookie
type SessionVerifier interface {
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

// RequireAuth verifies Firebase session cookies. Without a Firebase client
// the screens stay open and the demo login identity is used when present.
func RequireAuth(authClient *auth.Client) echo.MiddlewareFunc {
	if authClient == nil {
		return demoIdentity
	}
	return requireSession(authClient)
}

func demoIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(DemoUserCookie); err == nil && cookie.Value != "" {
			c.Set("userEmail", cookie.Value)
			c.Set("userUID", "demo")
		}
		return next(c)
	}
}

func requireSession(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(FirebaseCookie)
			if err != nil || cookie.Value == "" {
				return unauthenticated(c)
			}

			decodedToken, err := verifier.VerifySessionCookie(c.Request().Context(), cookie.Value)
			if err != nil {
				c.SetCookie(&http.Cookie{
					Name:     FirebaseCookie,
					Value:    "",
					MaxAge:   -1,
					HttpOnly: true,
					Path:     "/",
				})
				return unauthenticated(c)
			}

			c.Set("userUID", decodedToken.UID)
			if email, ok := decodedToken.Claims["email"].(string); ok {
				c.Set("userEmail", email)
			}
			if phone, ok := decodedToken.Claims["phone_number"].(string); ok {
				c.Set("userPhone", phone)
			}

			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	if IsAPI(c) {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusTemporaryRedirect, "/login")
}

// IsAPI reports whether the request targets the JSON API
func IsAPI(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}
