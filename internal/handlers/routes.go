package handlers

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authMiddleware "sakhigps/internal/middleware"
	"sakhigps/internal/services"
	"sakhigps/internal/session"
)

// Deps are the shared services the handlers need
type Deps struct {
	AuthClient *auth.Client
	Firebase   FirebaseWebConfig
	Sessions   *session.Manager
	DB         *gorm.DB
	Cache      *services.RedisCache
	Notifier   services.Notifier
	Secure     bool
}

// RegisterRoutes wires every screen and API endpoint onto e
func RegisterRoutes(e *echo.Echo, d Deps) {
	if d.Notifier == nil {
		d.Notifier = services.AckNotifier{}
	}

	authHandler := NewAuthHandler(d.AuthClient, d.Firebase, d.Sessions, d.Secure)
	dashboardHandler := NewDashboardHandler(d.Notifier)
	routeHandler := NewRouteHandler()
	voiceHandler := NewVoiceHandler()
	alertHandler := NewAlertHandler()
	contactHandler := NewContactHandler(d.DB)
	safetyHandler := NewSafetyHandler(d.Cache)
	offlineHandler := NewOfflineHandler(d.Notifier)
	checkinHandler := NewCheckinHandler(d.DB)

	// Public routes
	e.GET("/", Landing)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/demo", authHandler.DemoLogin)
	e.POST("/auth/otp/send", authHandler.SendOTP)
	e.POST("/auth/otp/verify", authHandler.VerifyOTP)
	e.POST("/auth/logout", authHandler.HandleLogout)

	// Screens
	protected := e.Group("")
	protected.Use(authMiddleware.RequireAuth(d.AuthClient))
	protected.Use(authMiddleware.Sessions(d.Sessions, d.Secure))

	protected.GET("/dashboard", dashboardHandler.Dashboard)
	protected.POST("/dashboard/voice-mode", dashboardHandler.ToggleVoiceMode)
	protected.POST("/dashboard/offline-mode", dashboardHandler.ToggleOfflineMode)
	protected.POST("/dashboard/sos", dashboardHandler.SOS)

	protected.GET("/routes", routeHandler.RoutesPage)
	protected.POST("/routes", routeHandler.GenerateRoutes)
	protected.GET("/navigation", routeHandler.NavigationPage)
	protected.POST("/navigation/:action", routeHandler.NavigationAction)

	protected.GET("/safety-score", safetyHandler.SafetyPage)

	protected.GET("/alerts", alertHandler.AlertsPage)
	protected.POST("/alerts/read-all", alertHandler.MarkAllRead)
	protected.POST("/alerts/:id/read", alertHandler.MarkRead)

	protected.GET("/contacts", contactHandler.ContactsPage)
	protected.POST("/contacts", contactHandler.AddContact)
	protected.POST("/contacts/:id/delete", contactHandler.RemoveContact)
	protected.POST("/contacts/:id/emergency", contactHandler.ToggleEmergency)
	protected.POST("/checkins", checkinHandler.CreateCheckin)
	protected.POST("/checkins/:id/disable", checkinHandler.DisableCheckin)

	protected.GET("/voice", voiceHandler.VoicePage)
	protected.POST("/voice/settings", voiceHandler.UpdateSettings)
	protected.POST("/voice/:action", voiceHandler.VoiceAction)

	protected.GET("/offline", offlineHandler.OfflinePage)
	protected.POST("/offline/toggle", offlineHandler.ToggleOffline)
	protected.POST("/offline/routes/:id/download", offlineHandler.Download)
	protected.POST("/offline/sms", offlineHandler.SendSMS)

	// JSON API for live widgets
	api := protected.Group("/api")
	api.GET("/dashboard", dashboardHandler.APIDashboard)
	api.POST("/sos", dashboardHandler.APISOS)

	api.GET("/routes", routeHandler.APIRoutes)
	api.GET("/routes/:id", routeHandler.APIRoute)
	api.GET("/live", routeHandler.APILive)
	api.GET("/navigation", routeHandler.APINavigation)
	api.POST("/navigation/trip", routeHandler.APIStartTrip)
	api.POST("/navigation/:action", routeHandler.APINavigationAction)

	api.GET("/safety", safetyHandler.APISafety)

	api.GET("/alerts", alertHandler.APIAlerts)
	api.POST("/alerts/read-all", alertHandler.APIMarkAllRead)
	api.POST("/alerts/:id/read", alertHandler.APIMarkRead)

	api.GET("/contacts", contactHandler.APIContacts)
	api.POST("/contacts", contactHandler.APIAddContact)
	api.DELETE("/contacts/:id", contactHandler.APIRemoveContact)
	api.POST("/contacts/:id/emergency", contactHandler.APIToggleEmergency)

	api.GET("/voice", voiceHandler.APIVoice)
	api.PUT("/voice/settings", voiceHandler.APIUpdateSettings)
	api.POST("/voice/:action", voiceHandler.APIVoiceAction)

	api.GET("/offline", offlineHandler.APIOffline)
	api.POST("/offline/toggle", offlineHandler.APIToggleOffline)
	api.POST("/offline/routes/:id/download", offlineHandler.APIDownload)
	api.POST("/offline/sms", offlineHandler.APISendSMS)

	api.GET("/checkins", checkinHandler.APICheckins)
	api.POST("/checkins", checkinHandler.APICreateCheckin)
	api.DELETE("/checkins/:id", checkinHandler.APIDisableCheckin)
}
