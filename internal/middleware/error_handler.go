package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/alerts"
	"sakhigps/internal/catalog"
	"sakhigps/internal/contacts"
	"sakhigps/internal/offline"
	"sakhigps/internal/render"
	"sakhigps/internal/services"
	"sakhigps/internal/session"
	"sakhigps/internal/tasks"
	"sakhigps/internal/voice"
)

var statusByError = []struct {
	err  error
	code int
}{
	{alerts.ErrAlertNotFound, http.StatusNotFound},
	{contacts.ErrContactNotFound, http.StatusNotFound},
	{catalog.ErrRouteNotFound, http.StatusNotFound},
	{offline.ErrRouteNotFound, http.StatusNotFound},
	{tasks.ErrCheckinNotFound, http.StatusNotFound},
	{session.ErrSessionNotFound, http.StatusUnauthorized},
	{contacts.ErrContactProtected, http.StatusForbidden},
	{contacts.ErrContactIncomplete, http.StatusBadRequest},
	{catalog.ErrDestinationRequired, http.StatusBadRequest},
	{voice.ErrUnknownPersona, http.StatusBadRequest},
	{voice.ErrSpeedRange, http.StatusBadRequest},
	{voice.ErrVolumeRange, http.StatusBadRequest},
	{tasks.ErrInvalidRecurrence, http.StatusBadRequest},
	{tasks.ErrNoRecipients, http.StatusBadRequest},
	{services.ErrNoRecipientRoute, http.StatusBadRequest},
}

// ToHTTPError maps domain errors onto HTTP status codes. Errors it does not
// know become a 500.
func ToHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return echo.NewHTTPError(m.code, err.Error()).SetInternal(err)
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

// CustomErrorHandler renders JSON for API requests and the error page otherwise
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := ToHTTPError(err)
	code := he.Code
	errorTitle := http.StatusText(code)
	errorMessage := ""
	if msg, ok := he.Message.(string); ok && msg != http.StatusText(code) {
		errorMessage = msg
	}

	switch code {
	case http.StatusNotFound:
		errorTitle = "Page Not Found"
		if errorMessage == "" {
			errorMessage = "The page you're looking for doesn't exist."
		}
	case http.StatusForbidden:
		errorTitle = "Access Denied"
		if errorMessage == "" {
			errorMessage = "You don't have permission to do that."
		}
	case http.StatusUnauthorized:
		errorTitle = "Unauthorized"
		if errorMessage == "" {
			errorMessage = "Please log in to continue."
		}
	case http.StatusBadRequest:
		errorTitle = "Bad Request"
		if errorMessage == "" {
			errorMessage = "The request could not be processed."
		}
	default:
		if code >= http.StatusInternalServerError {
			errorTitle = "Internal Server Error"
			errorMessage = "Something went wrong. Please try again later."
		}
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	var sendErr error
	switch {
	case c.Request().Method == http.MethodHead:
		sendErr = c.NoContent(code)
	case IsAPI(c):
		sendErr = c.JSON(code, map[string]string{"error": errorMessage})
	default:
		sendErr = c.Render(code, "error.html", &render.PageData{
			Title: errorTitle,
			Breadcrumbs: []render.Breadcrumb{
				{Title: "Home", URL: "/dashboard"},
				{Title: "Error"},
			},
			Data: map[string]interface{}{
				"Code":    code,
				"Title":   errorTitle,
				"Message": errorMessage,
			},
		})
	}

	if sendErr != nil {
		c.Logger().Error(fmt.Errorf("failed to render error page: %w", sendErr))
		c.String(code, errorMessage)
	}
}
