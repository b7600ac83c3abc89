package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sakhigps/internal/models"
	"sakhigps/internal/services"
	"sakhigps/internal/session"
	"sakhigps/internal/tasks"
)

const dueLayout = "2006-01-02T15:04"

// CheckinHandler schedules safety check-ins for the worker
type CheckinHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCheckinHandler creates a new CheckinHandler
func NewCheckinHandler(db *gorm.DB) *CheckinHandler {
	return &CheckinHandler{db: db, now: time.Now}
}

type checkinRequest struct {
	Message  string `json:"message" form:"message"`
	Location string `json:"location" form:"location"`
	// Due is RFC 3339 or a datetime-local value; empty means now
	Due string `json:"due" form:"due"`
	// Rule is an RRULE such as FREQ=DAILY; empty means once
	Rule string `json:"rule" form:"rule"`
}

func (h *CheckinHandler) parseDue(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return h.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dueLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid due time")
	}
	return t, nil
}

// emergencyRecipients turns the session's emergency contacts into
// notification recipients
func emergencyRecipients(s *session.Session) []services.Recipient {
	list := s.Contacts.EmergencyContacts()
	out := make([]services.Recipient, 0, len(list))
	for _, c := range list {
		out = append(out, services.Recipient{Name: c.Name, Phone: c.Phone, Email: c.Email})
	}
	return out
}

func (h *CheckinHandler) schedule(c echo.Context) (*models.ScheduledTask, error) {
	if h.db == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "Check-ins need a database")
	}
	s, err := currentSession(c)
	if err != nil {
		return nil, err
	}

	var req checkinRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid check-in")
	}
	due, err := h.parseDue(req.Due)
	if err != nil {
		return nil, err
	}

	args := tasks.SafetyCheckinArgs{
		Recipients: emergencyRecipients(s),
		Message:    req.Message,
		Location:   req.Location,
	}
	return tasks.ScheduleCheckin(c.Request().Context(), h.db, s.ID, args, due, strings.TrimSpace(req.Rule))
}

// CreateCheckin handles the check-in form on the contacts page
func (h *CheckinHandler) CreateCheckin(c echo.Context) error {
	if _, err := h.schedule(c); err != nil {
		return err
	}
	return seeOther(c, "/contacts")
}

// DisableCheckin handles the disable button on the contacts page
func (h *CheckinHandler) DisableCheckin(c echo.Context) error {
	if err := h.disable(c); err != nil {
		return err
	}
	return seeOther(c, "/contacts")
}

func (h *CheckinHandler) disable(c echo.Context) error {
	if h.db == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Check-ins need a database")
	}
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	return tasks.DisableCheckin(c.Request().Context(), h.db, s.ID, uint(id))
}

// APICheckins lists the session's check-ins
func (h *CheckinHandler) APICheckins(c echo.Context) error {
	if h.db == nil {
		return c.JSON(http.StatusOK, []models.ScheduledTask{})
	}
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	list, err := tasks.ListCheckins(c.Request().Context(), h.db, s.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// APICreateCheckin schedules a check-in
func (h *CheckinHandler) APICreateCheckin(c echo.Context) error {
	task, err := h.schedule(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// APIDisableCheckin stops a check-in
func (h *CheckinHandler) APIDisableCheckin(c echo.Context) error {
	if err := h.disable(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
