package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/catalog"
	"sakhigps/internal/models"
	"sakhigps/internal/render"
	"sakhigps/internal/session"
)

// VoiceHandler serves voice navigation and its settings
type VoiceHandler struct{}

// NewVoiceHandler creates a new VoiceHandler
func NewVoiceHandler() *VoiceHandler {
	return &VoiceHandler{}
}

// VoicePage renders the voice navigation screen
func (h *VoiceHandler) VoicePage(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return renderPage(c, "voice.html", "Voice Navigation", "voice", []render.Breadcrumb{{Title: "Voice Navigation"}}, map[string]interface{}{
		"View":     s.VoiceView(),
		"Steps":    s.VoiceNav.Steps(),
		"Personas": catalog.Personas(),
		"Commands": catalog.VoiceCommands(),
		"Period":   s.VoiceNav.Period().Seconds(),
	})
}

// voiceAction runs start, stop or listen. Voice navigation has no pause,
// so start and stop both rewind to the first instruction.
func voiceAction(s *session.Session, action string) error {
	switch action {
	case "start":
		s.VoiceNav.Start()
	case "stop":
		s.VoiceNav.Stop()
	case "listen":
		s.Voice.ToggleListening()
	default:
		return errUnknownAction
	}
	return nil
}

// VoiceAction handles the voice screen buttons
func (h *VoiceHandler) VoiceAction(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := voiceAction(s, c.Param("action")); err != nil {
		return err
	}
	return seeOther(c, "/voice")
}

// settingsForm binds the settings form. Checkbox fields are absent when off.
func settingsForm(c echo.Context, current models.VoiceSettings) (models.VoiceSettings, error) {
	out := current
	if v := c.FormValue("persona"); v != "" {
		out.Persona = models.PersonaID(v)
	}
	if v := c.FormValue("speed"); v != "" {
		speed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return out, echo.NewHTTPError(http.StatusBadRequest, "Invalid speed")
		}
		out.Speed = speed
	}
	if v := c.FormValue("volume"); v != "" {
		volume, err := strconv.Atoi(v)
		if err != nil {
			return out, echo.NewHTTPError(http.StatusBadRequest, "Invalid volume")
		}
		out.Volume = volume
	}
	out.Enabled = c.FormValue("enabled") != ""
	return out, nil
}

// UpdateSettings applies the settings form
func (h *VoiceHandler) UpdateSettings(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	settings, err := settingsForm(c, s.Voice.Settings())
	if err != nil {
		return err
	}
	if err := s.Voice.Apply(settings); err != nil {
		return err
	}
	return seeOther(c, "/voice")
}

// APIVoice returns the voice screen state
func (h *VoiceHandler) APIVoice(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.VoiceView())
}

// APIVoiceAction runs a voice action and returns the new state
func (h *VoiceHandler) APIVoiceAction(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := voiceAction(s, c.Param("action")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.VoiceView())
}

// APIUpdateSettings replaces the voice settings from a JSON body
func (h *VoiceHandler) APIUpdateSettings(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	settings := s.Voice.Settings()
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid settings")
	}
	if err := s.Voice.Apply(settings); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Voice.Settings())
}
