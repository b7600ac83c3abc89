package handlers

import (
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"sakhigps/internal/middleware"
	"sakhigps/internal/session"
)

// FirebaseWebConfig is what the login page needs for the Firebase JS SDK
type FirebaseWebConfig struct {
	APIKey     string
	AuthDomain string
	ProjectID  string
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authClient *auth.Client
	web        FirebaseWebConfig
	sessions   *session.Manager
	secure     bool
}

// NewAuthHandler creates a new AuthHandler. authClient may be nil, in which
// case the demo email and OTP login is offered instead.
func NewAuthHandler(authClient *auth.Client, web FirebaseWebConfig, sessions *session.Manager, secure bool) *AuthHandler {
	return &AuthHandler{authClient: authClient, web: web, sessions: sessions, secure: secure}
}

type loginView struct {
	Firebase bool
	Web      FirebaseWebConfig
	Method   string
	Email    string
	Phone    string
	OTPSent  bool
	Error    string
}

func (h *AuthHandler) renderLogin(c echo.Context, code int, v loginView) error {
	v.Firebase = h.authClient != nil
	v.Web = h.web
	if v.Method == "" {
		v.Method = "email"
	}
	return c.Render(code, "login.html", v)
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, loginView{Method: c.QueryParam("method")})
}

// HandleLogin verifies the Firebase ID token and creates a session cookie
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	if h.authClient == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Firebase not initialized",
		})
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Missing authorization header",
		})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid authorization format",
		})
	}

	if _, err := h.authClient.VerifyIDToken(c.Request().Context(), tokenString); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid token",
		})
	}

	expiresIn := time.Hour * 24 * 5
	cookieValue, err := h.authClient.SessionCookie(c.Request().Context(), tokenString, expiresIn)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create session",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.FirebaseCookie,
		Value:    cookieValue,
		MaxAge:   int(expiresIn.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *AuthHandler) setDemoUser(c echo.Context, identity string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.DemoUserCookie,
		Value:    identity,
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

// DemoLogin signs in with any email address
func (h *AuthHandler) DemoLogin(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if email == "" {
		return h.renderLogin(c, http.StatusBadRequest, loginView{Error: "Enter your email to continue"})
	}
	h.setDemoUser(c, email)
	return seeOther(c, "/dashboard")
}

// SendOTP pretends to text a one-time code to the phone number
func (h *AuthHandler) SendOTP(c echo.Context) error {
	phone := strings.TrimSpace(c.FormValue("phone"))
	if phone == "" {
		return h.renderLogin(c, http.StatusBadRequest, loginView{Method: "otp", Error: "Enter your phone number"})
	}
	return h.renderLogin(c, http.StatusOK, loginView{Method: "otp", Phone: phone, OTPSent: true})
}

// VerifyOTP accepts any non-empty code for the phone number
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	phone := strings.TrimSpace(c.FormValue("phone"))
	otp := strings.TrimSpace(c.FormValue("otp"))
	if phone == "" || otp == "" {
		return h.renderLogin(c, http.StatusBadRequest, loginView{Method: "otp", Phone: phone, OTPSent: phone != "", Error: "Enter the code we sent"})
	}
	h.setDemoUser(c, phone)
	return seeOther(c, "/dashboard")
}

// HandleLogout clears the login cookies and forgets the visitor's session
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	for _, name := range []string{middleware.FirebaseCookie, middleware.DemoUserCookie, middleware.SessionCookie} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			HttpOnly: true,
			Path:     "/",
		})
	}

	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Forget(c.Request().Context(), cookie.Value); err != nil {
			c.Logger().Warn(err)
		}
	}

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "logged out",
		})
	}
	return seeOther(c, "/login")
}
