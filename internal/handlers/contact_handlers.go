package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sakhigps/internal/contacts"
	"sakhigps/internal/models"
	"sakhigps/internal/render"
	"sakhigps/internal/tasks"
)

// ContactHandler serves the trusted circle screen
type ContactHandler struct {
	db *gorm.DB
}

// NewContactHandler creates a new ContactHandler. db may be nil, which
// hides scheduled check-ins.
func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

// ContactsPage lists the trusted circle and scheduled check-ins
func (h *ContactHandler) ContactsPage(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}

	var checkins []models.ScheduledTask
	if h.db != nil {
		checkins, err = tasks.ListCheckins(c.Request().Context(), h.db, s.ID)
		if err != nil {
			return err
		}
	}

	return renderPage(c, "contacts.html", "Trusted Circle", "contacts", []render.Breadcrumb{{Title: "Trusted Circle"}}, map[string]interface{}{
		"Contacts":  s.Contacts.List(),
		"Emergency": s.Contacts.EmergencyContacts(),
		"Checkins":  checkins,
		"CanCheck":  h.db != nil,
	})
}

// AddContact handles the add contact form. An incomplete form is ignored.
func (h *ContactHandler) AddContact(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}

	var in models.NewContact
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid contact")
	}
	if _, err := s.Contacts.Add(in); err != nil && !errors.Is(err, contacts.ErrContactIncomplete) {
		return err
	}
	return seeOther(c, "/contacts")
}

// RemoveContact deletes a contact. Protected contacts stay and the page
// explains why.
func (h *ContactHandler) RemoveContact(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.Contacts.Remove(id); err != nil {
		if errors.Is(err, contacts.ErrContactProtected) {
			return seeOther(c, "/contacts?flash="+url.QueryEscape("This contact cannot be removed"))
		}
		return err
	}
	return seeOther(c, "/contacts")
}

// ToggleEmergency flips a contact's emergency flag
func (h *ContactHandler) ToggleEmergency(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := s.Contacts.ToggleEmergency(id); err != nil {
		return err
	}
	return seeOther(c, "/contacts")
}

// APIContacts lists the trusted circle
func (h *ContactHandler) APIContacts(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Contacts.List())
}

// APIAddContact adds a contact. Unlike the form, incomplete input is a 400.
func (h *ContactHandler) APIAddContact(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var in models.NewContact
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid contact")
	}
	contact, err := s.Contacts.Add(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contact)
}

// APIRemoveContact deletes a contact
func (h *ContactHandler) APIRemoveContact(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.Contacts.Remove(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// APIToggleEmergency flips a contact's emergency flag
func (h *ContactHandler) APIToggleEmergency(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	contact, err := s.Contacts.ToggleEmergency(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}
