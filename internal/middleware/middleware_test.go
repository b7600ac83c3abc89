package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakhigps/internal/alerts"
	"sakhigps/internal/catalog"
	"sakhigps/internal/contacts"
	"sakhigps/internal/schedule"
	"sakhigps/internal/session"
	"sakhigps/internal/voice"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"alert", alerts.ErrAlertNotFound, http.StatusNotFound},
		{"wrapped route", fmt.Errorf("lookup: %w", catalog.ErrRouteNotFound), http.StatusNotFound},
		{"protected", contacts.ErrContactProtected, http.StatusForbidden},
		{"incomplete", contacts.ErrContactIncomplete, http.StatusBadRequest},
		{"speed", voice.ErrSpeedRange, http.StatusBadRequest},
		{"session", session.ErrSessionNotFound, http.StatusUnauthorized},
		{"echo", echo.NewHTTPError(http.StatusTeapot, "short"), http.StatusTeapot},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ToHTTPError(tt.err).Code)
		})
	}
}

func TestErrorHandlerAPIReturnsJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/alerts/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	CustomErrorHandler(alerts.ErrAlertNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"alert not found"}`, rec.Body.String())
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	CustomErrorHandler(errors.New("redis: connection refused"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis")
}

func TestErrorHandlerFallsBackWithoutRenderer(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	CustomErrorHandler(contacts.ErrContactProtected, c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "contact cannot be removed", rec.Body.String())
}

type fakeVerifier struct {
	token *auth.Token
	err   error
}

func (f fakeVerifier) VerifySessionCookie(context.Context, string) (*auth.Token, error) {
	return f.token, f.err
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, path string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestRequireSession(t *testing.T) {
	valid := fakeVerifier{token: &auth.Token{UID: "u1", Claims: map[string]interface{}{"email": "a@b.c"}}}
	cookie := &http.Cookie{Name: FirebaseCookie, Value: "cookie"}

	t.Run("page without cookie redirects", func(t *testing.T) {
		rec, _, called := runAuth(t, requireSession(valid), "/dashboard")
		assert.False(t, called)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("api without cookie is 401", func(t *testing.T) {
		rec, _, called := runAuth(t, requireSession(valid), "/api/dashboard")
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid cookie sets identity", func(t *testing.T) {
		_, c, called := runAuth(t, requireSession(valid), "/dashboard", cookie)
		require.True(t, called)
		assert.Equal(t, "u1", c.Get("userUID"))
		assert.Equal(t, "a@b.c", c.Get("userEmail"))
	})

	t.Run("invalid cookie is cleared", func(t *testing.T) {
		rec, _, called := runAuth(t, requireSession(fakeVerifier{err: errors.New("expired")}), "/dashboard", cookie)
		assert.False(t, called)
		assert.Contains(t, rec.Header().Get("Set-Cookie"), FirebaseCookie+"=;")
	})
}

func TestDemoIdentity(t *testing.T) {
	_, c, called := runAuth(t, RequireAuth(nil), "/dashboard")
	assert.True(t, called)
	assert.Nil(t, c.Get("userEmail"))

	_, c, called = runAuth(t, RequireAuth(nil), "/dashboard", &http.Cookie{Name: DemoUserCookie, Value: "priya@example.com"})
	assert.True(t, called)
	assert.Equal(t, "priya@example.com", c.Get("userEmail"))
}

func TestSessionsMiddleware(t *testing.T) {
	m := session.NewManager(schedule.NewManualScheduler(), nil, session.DefaultConfig())
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetSession(c).ID)
	}, Sessions(m, false))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, rec.Body.String(), cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	again := httptest.NewRecorder()
	e.ServeHTTP(again, req)
	assert.Equal(t, cookies[0].Value, again.Body.String())
	assert.Empty(t, again.Result().Cookies())
	assert.Equal(t, 1, m.Len())
}
