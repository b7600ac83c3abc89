package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"sakhigps/internal/catalog"
	"sakhigps/internal/render"
	"sakhigps/internal/services"
)

const smsAlertMessage = "Emergency alert from SakhiGPS. I need help. This message was sent while offline."

// OfflineHandler serves offline mode, route downloads and SMS alerts
type OfflineHandler struct {
	notifier services.Notifier
}

// NewOfflineHandler creates a new OfflineHandler
func NewOfflineHandler(notifier services.Notifier) *OfflineHandler {
	return &OfflineHandler{notifier: notifier}
}

// OfflinePage renders the offline screen
func (h *OfflineHandler) OfflinePage(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return renderPage(c, "offline.html", "Offline Mode", "offline", []render.Breadcrumb{{Title: "Offline Mode"}}, map[string]interface{}{
		"Status":  s.Offline.Status(),
		"Numbers": catalog.EmergencyNumbers(),
	})
}

// ToggleOffline flips offline mode
func (h *OfflineHandler) ToggleOffline(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	s.Offline.Toggle()
	return seeOther(c, "/offline")
}

// Download starts caching a route
func (h *OfflineHandler) Download(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := s.Offline.Download(id); err != nil {
		return err
	}
	return seeOther(c, "/offline")
}

type smsRequest struct {
	Name    string `json:"name" form:"name"`
	Number  string `json:"number" form:"number"`
	Message string `json:"message" form:"message"`
}

func (h *OfflineHandler) sendSMS(c echo.Context) (services.Receipt, error) {
	var req smsRequest
	if err := c.Bind(&req); err != nil {
		return services.Receipt{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid SMS request")
	}
	req.Number = strings.TrimSpace(req.Number)
	if req.Number == "" {
		return services.Receipt{}, echo.NewHTTPError(http.StatusBadRequest, "Number is required")
	}
	if req.Message == "" {
		req.Message = smsAlertMessage
	}
	return h.notifier.Notify(c.Request().Context(), services.Recipient{Name: req.Name, Phone: req.Number}, req.Message)
}

// SendSMS alerts one emergency number
func (h *OfflineHandler) SendSMS(c echo.Context) error {
	receipt, err := h.sendSMS(c)
	if err != nil {
		return err
	}
	flash := "SMS alert sent to " + receipt.Recipient.String()
	return seeOther(c, "/offline?flash="+url.QueryEscape(flash))
}

// APIOffline returns offline status and download progress
func (h *OfflineHandler) APIOffline(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Offline.Status())
}

// APIToggleOffline flips offline mode
func (h *OfflineHandler) APIToggleOffline(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	s.Offline.Toggle()
	return c.JSON(http.StatusOK, s.Offline.Status())
}

// APIDownload starts caching a route. A download already running makes
// this a no-op reported as started=false.
func (h *OfflineHandler) APIDownload(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	started, err := s.Offline.Download(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"started": started,
		"status":  s.Offline.Status(),
	})
}

// APISendSMS alerts one emergency number
func (h *OfflineHandler) APISendSMS(c echo.Context) error {
	receipt, err := h.sendSMS(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, receipt)
}
