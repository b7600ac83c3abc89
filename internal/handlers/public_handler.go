package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type feature struct {
	Title       string
	Description string
	URL         string
}

var features = []feature{
	{"Safe Routes", "Routes ranked by lighting, crowd density and incident reports", "/routes"},
	{"Trusted Circle", "Keep family and friends updated on your journey", "/contacts"},
	{"Smart Alerts", "Real-time notifications about your surroundings", "/alerts"},
	{"Voice Navigation", "Hands-free guidance with personas for every walker", "/voice"},
	{"Offline Mode", "Cached routes and SMS alerts without a connection", "/offline"},
	{"Safety Score", "Live safety rating of the area around you", "/safety-score"},
}

// Landing renders the public landing page
func Landing(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Features": features,
	})
}
