package handlers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/alerts"
	"sakhigps/internal/render"
)

// AlertHandler serves the smart alerts screen
type AlertHandler struct{}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler() *AlertHandler {
	return &AlertHandler{}
}

// AlertsPage lists alerts for the selected filter
func (h *AlertHandler) AlertsPage(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	filter := alerts.ParseFilter(c.QueryParam("filter"))

	return renderPage(c, "alerts.html", "Smart Alerts", "alerts", []render.Breadcrumb{{Title: "Smart Alerts"}}, map[string]interface{}{
		"Filter":  filter,
		"Filters": alerts.Filters(),
		"Alerts":  s.Alerts.List(filter),
		"Unread":  s.Alerts.UnreadCount(),
	})
}

func alertsURL(c echo.Context) string {
	if f := c.FormValue("filter"); f != "" {
		return "/alerts?filter=" + url.QueryEscape(f)
	}
	return "/alerts"
}

// MarkRead marks one alert read
func (h *AlertHandler) MarkRead(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.Alerts.MarkRead(id); err != nil {
		return err
	}
	return seeOther(c, alertsURL(c))
}

// MarkAllRead marks every alert read
func (h *AlertHandler) MarkAllRead(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	s.Alerts.MarkAllRead()
	return seeOther(c, alertsURL(c))
}

type alertList struct {
	Filter alerts.Filter `json:"filter"`
	Unread int           `json:"unread"`
	Alerts interface{}   `json:"alerts"`
}

// APIAlerts lists alerts for the filter query
func (h *AlertHandler) APIAlerts(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	filter := alerts.ParseFilter(c.QueryParam("filter"))
	return c.JSON(http.StatusOK, alertList{Filter: filter, Unread: s.Alerts.UnreadCount(), Alerts: s.Alerts.List(filter)})
}

// APIMarkRead marks one alert read
func (h *AlertHandler) APIMarkRead(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.Alerts.MarkRead(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"unread": s.Alerts.UnreadCount()})
}

// APIMarkAllRead marks every alert read
func (h *AlertHandler) APIMarkAllRead(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	s.Alerts.MarkAllRead()
	return c.JSON(http.StatusOK, map[string]int{"unread": 0})
}
