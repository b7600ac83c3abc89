package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/catalog"
	"sakhigps/internal/models"
	"sakhigps/internal/render"
)

// RouteHandler serves the route planner and turn-by-turn navigation
type RouteHandler struct{}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler() *RouteHandler {
	return &RouteHandler{}
}

// RoutesPage renders the planner. Routes are listed once a destination is given.
func (h *RouteHandler) RoutesPage(c echo.Context) error {
	destination := strings.TrimSpace(c.QueryParam("destination"))

	var routes []models.RouteOption
	if destination != "" {
		var err error
		routes, err = catalog.GenerateRoutes(destination)
		if err != nil {
			return err
		}
	}

	return renderPage(c, "routes.html", "Safe Routes", "routes", []render.Breadcrumb{{Title: "Safe Routes"}}, map[string]interface{}{
		"Destination": destination,
		"Routes":      routes,
	})
}

// GenerateRoutes handles the planner form
func (h *RouteHandler) GenerateRoutes(c echo.Context) error {
	destination := strings.TrimSpace(c.FormValue("destination"))
	if destination == "" {
		return seeOther(c, "/routes")
	}
	return seeOther(c, "/routes?destination="+url.QueryEscape(destination))
}

// APIRoutes lists route options for a destination
func (h *RouteHandler) APIRoutes(c echo.Context) error {
	routes, err := catalog.GenerateRoutes(strings.TrimSpace(c.QueryParam("destination")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, routes)
}

// APIRoute returns one route option
func (h *RouteHandler) APIRoute(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	route, err := catalog.RouteByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, route)
}

// NavigationPage renders turn-by-turn navigation. A route query switches the
// trip and starts the sequencer from the first step.
func (h *RouteHandler) NavigationPage(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}

	if raw := c.QueryParam("route"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid route")
		}
		route, err := catalog.RouteByID(id)
		if err != nil {
			return err
		}
		s.SetTrip(route, c.QueryParam("destination"))
		s.Navigation.Start()
		return seeOther(c, "/navigation")
	}

	return renderPage(c, "navigation.html", "Navigation", "routes", []render.Breadcrumb{
		{Title: "Safe Routes", URL: "/routes"},
		{Title: "Navigation"},
	}, map[string]interface{}{
		"View":    s.NavigationView(),
		"Metrics": catalog.LiveMetrics(),
		"Live":    catalog.LiveAlerts(),
		"Period":  s.Navigation.Period().Seconds(),
	})
}

var errUnknownAction = echo.NewHTTPError(http.StatusBadRequest, "Unknown action")

type stepper interface {
	Start()
	Pause()
	Resume()
	Stop()
}

func applyAction(st stepper, action string) error {
	switch action {
	case "start":
		st.Start()
	case "pause":
		st.Pause()
	case "resume":
		st.Resume()
	case "stop":
		st.Stop()
	default:
		return errUnknownAction
	}
	return nil
}

// NavigationAction handles the start, pause, resume and stop buttons
func (h *RouteHandler) NavigationAction(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := applyAction(s.Navigation, c.Param("action")); err != nil {
		return err
	}
	return seeOther(c, "/navigation")
}

// APINavigation returns the navigation state
func (h *RouteHandler) APINavigation(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.NavigationView())
}

// APINavigationAction controls the sequencer and returns the new state
func (h *RouteHandler) APINavigationAction(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := applyAction(s.Navigation, c.Param("action")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.NavigationView())
}

type tripRequest struct {
	RouteID     int    `json:"route_id" form:"route_id"`
	Destination string `json:"destination" form:"destination"`
}

// APIStartTrip selects a route and starts navigating it
func (h *RouteHandler) APIStartTrip(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}

	var req tripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid trip")
	}
	route, err := catalog.RouteByID(req.RouteID)
	if err != nil {
		return err
	}
	s.SetTrip(route, req.Destination)
	s.Navigation.Start()
	return c.JSON(http.StatusOK, s.NavigationView())
}

// APILive returns the indicators shown while navigating
func (h *RouteHandler) APILive(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"metrics": catalog.LiveMetrics(),
		"alerts":  catalog.LiveAlerts(),
	})
}
