package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/middleware"
	"sakhigps/internal/render"
	"sakhigps/internal/session"
)

// Helper to safely get string from context
func getStringFromContext(c echo.Context, key string) string {
	val := c.Get(key)
	if val == nil {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	return strVal
}

// currentSession returns the visitor's session or a 401
func currentSession(c echo.Context) (*session.Session, error) {
	s := middleware.GetSession(c)
	if s == nil {
		return nil, session.ErrSessionNotFound
	}
	return s, nil
}

func intParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// seeOther redirects a form post back to a page
func seeOther(c echo.Context, url string) error {
	return c.Redirect(http.StatusSeeOther, url)
}

func renderPage(c echo.Context, name, title, nav string, crumbs []render.Breadcrumb, data interface{}) error {
	return c.Render(http.StatusOK, name, &render.PageData{
		Title:       title,
		ActiveNav:   nav,
		Breadcrumbs: append([]render.Breadcrumb{{Title: "Home", URL: "/dashboard"}}, crumbs...),
		Flash:       c.QueryParam("flash"),
		Data:        data,
	})
}
