package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/alerts"
	"sakhigps/internal/catalog"
	"sakhigps/internal/models"
	"sakhigps/internal/render"
	"sakhigps/internal/services"
)

// DashboardHandler handles the dashboard and its mode toggles
type DashboardHandler struct {
	notifier services.Notifier
	now      func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(notifier services.Notifier) *DashboardHandler {
	return &DashboardHandler{notifier: notifier, now: time.Now}
}

// Greeting returns the salutation for the hour of t
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// DashboardView is the dashboard page and API payload
type DashboardView struct {
	Greeting    string                 `json:"greeting"`
	Time        string                 `json:"time"`
	SafetyScore int                    `json:"safety_score"`
	SafetyBand  models.ScoreBand       `json:"safety_band"`
	VoiceMode   bool                   `json:"voice_mode"`
	OfflineMode bool                   `json:"offline_mode"`
	UnreadCount int                    `json:"unread_count"`
	Alerts      []models.AlertRecord   `json:"alerts"`
	Contacts    []models.ContactRecord `json:"contacts"`
}

func (h *DashboardHandler) view(c echo.Context) (DashboardView, error) {
	s, err := currentSession(c)
	if err != nil {
		return DashboardView{}, err
	}

	now := h.now()
	report := catalog.SafetyReport()
	recent := s.Alerts.List(alerts.FilterAll)
	if len(recent) > 3 {
		recent = recent[:3]
	}
	circle := s.Contacts.List()
	if len(circle) > 3 {
		circle = circle[:3]
	}

	return DashboardView{
		Greeting:    Greeting(now),
		Time:        now.Format("15:04"),
		SafetyScore: report.CurrentScore,
		SafetyBand:  report.Band(),
		VoiceMode:   s.VoiceMode(),
		OfflineMode: s.Offline.Enabled(),
		UnreadCount: s.Alerts.UnreadCount(),
		Alerts:      recent,
		Contacts:    circle,
	}, nil
}

// Dashboard renders the dashboard page
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return renderPage(c, "dashboard.html", "Dashboard", "dashboard", []render.Breadcrumb{{Title: "Dashboard"}}, v)
}

// APIDashboard returns the dashboard state as JSON
func (h *DashboardHandler) APIDashboard(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// ToggleVoiceMode flips the voice mode toggle
func (h *DashboardHandler) ToggleVoiceMode(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	s.ToggleVoiceMode()
	return seeOther(c, "/dashboard")
}

// ToggleOfflineMode flips the offline mode toggle
func (h *DashboardHandler) ToggleOfflineMode(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	s.Offline.Toggle()
	return seeOther(c, "/dashboard")
}

// SOSResult reports who an SOS reached
type SOSResult struct {
	Sent   []services.Receipt `json:"sent"`
	Failed []string           `json:"failed"`
}

func (h *DashboardHandler) sendSOS(c echo.Context) (SOSResult, error) {
	s, err := currentSession(c)
	if err != nil {
		return SOSResult{}, err
	}

	msg := fmt.Sprintf("SOS from SakhiGPS at %s. I need help.", h.now().Format("15:04"))
	if route := s.NavigationView().Trip; route.RouteName != "" {
		msg = fmt.Sprintf("%s Last known route: %s.", msg, route.RouteName)
	}

	var result SOSResult
	for _, contact := range s.Contacts.EmergencyContacts() {
		to := services.Recipient{Name: contact.Name, Phone: contact.Phone, Email: contact.Email}
		receipt, err := h.notifier.Notify(c.Request().Context(), to, msg)
		if err != nil {
			log.Printf("SOS to %s failed: %v", contact.Name, err)
			result.Failed = append(result.Failed, contact.Name)
			continue
		}
		result.Sent = append(result.Sent, receipt)
	}
	return result, nil
}

// SOS alerts every emergency contact and returns to the dashboard
func (h *DashboardHandler) SOS(c echo.Context) error {
	result, err := h.sendSOS(c)
	if err != nil {
		return err
	}
	flash := fmt.Sprintf("SOS sent to %d emergency contacts", len(result.Sent))
	return seeOther(c, "/dashboard?flash="+url.QueryEscape(flash))
}

// APISOS alerts every emergency contact
func (h *DashboardHandler) APISOS(c echo.Context) error {
	result, err := h.sendSOS(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
