// Package catalog is the single source of seed data for every screen.
// Callers get fresh copies so no screen can mutate another's view.
package catalog

import (
	"errors"
	"strings"

	"sakhigps/internal/models"
)

var (
	ErrDestinationRequired = errors.New("destination is required")
	ErrRouteNotFound       = errors.New("route not found")
)

// EmergencyServicesID is the id of the seeded emergency services contact
const EmergencyServicesID = 3

// NavigationSteps returns the walking instructions for the route navigation screen
func NavigationSteps() []models.NavigationStep {
	return []models.NavigationStep{
		{Instruction: "Head north on Main Street for 200 meters", DistanceLabel: "200m", SafetyNote: "Well-lit area with good visibility", Maneuver: models.ManeuverStraight},
		{Instruction: "Turn right onto Park Avenue", DistanceLabel: "Turn right", SafetyNote: "High foot traffic area - very safe", Maneuver: models.ManeuverTurnRight},
		{Instruction: "Continue straight for 300 meters past the shopping center", DistanceLabel: "300m", SafetyNote: "CCTV coverage available", Maneuver: models.ManeuverStraight},
		{Instruction: "Turn left onto Oak Street", DistanceLabel: "Turn left", SafetyNote: "Police patrol route - secure area", Maneuver: models.ManeuverTurnLeft},
		{Instruction: "Your destination will be on the right in 100 meters", DistanceLabel: "100m", SafetyNote: "Destination area is well-monitored", Maneuver: models.ManeuverDestination},
	}
}

// VoiceSteps returns the spoken instructions used by voice navigation
func VoiceSteps() []string {
	return []string{
		"Head north on Main Street for 200 meters",
		"Turn right onto Park Avenue - well-lit area ahead",
		"Continue straight for 300 meters past the shopping center",
		"Turn left onto Oak Street - high foot traffic area",
		"Your destination will be on the right in 100 meters",
	}
}

// LiveMetrics returns the area indicators shown while navigating
func LiveMetrics() models.LiveMetrics {
	return models.LiveMetrics{CurrentArea: 88, Lighting: 92, CrowdDensity: 85, CCTV: 78}
}

// LiveAlerts returns the short alert feed shown beside navigation
func LiveAlerts() []models.AlertRecord {
	return []models.AlertRecord{
		{ID: 1, Kind: models.AlertKindInfo, Message: "Good lighting ahead on Park Avenue", TimeLabel: "Just now", Severity: models.SeverityLow, Category: models.AlertCategoryRoute},
		{ID: 2, Kind: models.AlertKindSuccess, Message: "High foot traffic detected - safe area", TimeLabel: "1 min ago", Severity: models.SeverityLow, Category: models.AlertCategorySafety},
	}
}

// Alerts returns the seed alert list for the smart alerts screen
func Alerts() []models.AlertRecord {
	return []models.AlertRecord{
		{
			ID: 1, Kind: models.AlertKindWarning, Title: "Construction Work Ahead",
			Message:  "Road construction reported on Main Street. Consider alternative route via Park Avenue.",
			Location: "Main St & 5th Ave", TimeLabel: "5 minutes ago", Severity: models.SeverityMedium,
			Category: models.AlertCategoryTraffic,
		},
		{
			ID: 2, Kind: models.AlertKindInfo, Title: "Well-Lit Route Available",
			Message:  "A safer, well-lit route is available through Central Plaza with high foot traffic.",
			Location: "Central Plaza", TimeLabel: "12 minutes ago", Severity: models.SeverityLow,
			Category: models.AlertCategoryRoute,
		},
		{
			ID: 3, Kind: models.AlertKindSuccess, Title: "Sarah Checked In Safely",
			Message:  "Your trusted contact Sarah has arrived safely at her destination.",
			Location: "Downtown Office", TimeLabel: "25 minutes ago", Severity: models.SeverityLow,
			Read: true, Category: models.AlertCategoryContact,
		},
		{
			ID: 4, Kind: models.AlertKindWarning, Title: "Incident Reported Nearby",
			Message:  "A minor incident was reported 2 blocks away. Police are on scene. Area is secure.",
			Location: "Oak St & 3rd Ave", TimeLabel: "1 hour ago", Severity: models.SeverityHigh,
			Read: true, Category: models.AlertCategorySafety,
		},
		{
			ID: 5, Kind: models.AlertKindInfo, Title: "Weather Alert",
			Message:  "Light rain expected in 30 minutes. Consider covered routes or bring an umbrella.",
			Location: "Your Area", TimeLabel: "2 hours ago", Severity: models.SeverityLow,
			Read: true, Category: models.AlertCategoryWeather,
		},
	}
}

// Contacts returns the seed trusted circle
func Contacts() []models.ContactRecord {
	return []models.ContactRecord{
		{ID: 1, Name: "Mom", Phone: "+1 (555) 123-4567", Email: "mom@email.com", Relationship: "Family", Presence: models.PresenceOnline, LastSeenLabel: "now", Location: "Home", IsEmergencyContact: true},
		{ID: 2, Name: "Sarah Johnson", Phone: "+1 (555) 987-6543", Email: "sarah.j@email.com", Relationship: "Best Friend", Presence: models.PresenceOnline, LastSeenLabel: "2 min ago", Location: "Office", IsEmergencyContact: true},
		{ID: EmergencyServicesID, Name: "Emergency Services", Phone: "911", Email: "emergency@local.gov", Relationship: "Emergency", Presence: models.PresenceAvailable, LastSeenLabel: "24/7", Location: "Always Available", IsEmergencyContact: true, Protected: true},
		{ID: 4, Name: "Alex Chen", Phone: "+1 (555) 456-7890", Email: "alex.chen@email.com", Relationship: "Colleague", Presence: models.PresenceOffline, LastSeenLabel: "1 hour ago", Location: "Unknown"},
	}
}

// Routes returns the static route options
func Routes() []models.RouteOption {
	return []models.RouteOption{
		{ID: 1, Name: "Safest Route", DurationLabel: "18 min", DistanceLabel: "1.2 km", SafetyScore: 92, Lighting: 95, CrowdDensity: 88, Incidents: 2, Description: "Well-lit main streets with high foot traffic", Waypoints: []string{"Main St", "Central Plaza", "Park Ave"}},
		{ID: 2, Name: "Balanced Route", DurationLabel: "15 min", DistanceLabel: "1.0 km", SafetyScore: 85, Lighting: 82, CrowdDensity: 90, Incidents: 4, Description: "Good balance of safety and efficiency", Waypoints: []string{"Oak St", "Market Square", "Pine Ave"}},
		{ID: 3, Name: "Fastest Route", DurationLabel: "12 min", DistanceLabel: "0.8 km", SafetyScore: 72, Lighting: 68, CrowdDensity: 75, Incidents: 8, Description: "Direct route with moderate safety", Waypoints: []string{"Side St", "Alley Way", "Back St"}},
	}
}

// GenerateRoutes reveals the route options for a destination.
// The destination does not influence the options.
func GenerateRoutes(destination string) ([]models.RouteOption, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, ErrDestinationRequired
	}
	return Routes(), nil
}

// RouteByID finds a route option
func RouteByID(id int) (models.RouteOption, error) {
	for _, r := range Routes() {
		if r.ID == id {
			return r, nil
		}
	}
	return models.RouteOption{}, ErrRouteNotFound
}

// SafetyReport returns the safety score screen data
func SafetyReport() models.SafetyReport {
	return models.SafetyReport{
		CurrentScore: 85,
		Factors: []models.SafetyFactor{
			{Key: "lighting", Label: "Street Lighting", Score: 92, Trend: models.TrendUp, Description: "Excellent street lighting coverage"},
			{Key: "crowdDensity", Label: "Crowd Density", Score: 78, Trend: models.TrendStable, Description: "Moderate to high foot traffic"},
			{Key: "incidents", Label: "Incident Reports", Score: 85, Trend: models.TrendUp, Description: "Low recent incident reports"},
			{Key: "policePresence", Label: "Police Presence", Score: 88, Trend: models.TrendUp, Description: "Regular patrol coverage"},
			{Key: "cctv", Label: "CCTV Coverage", Score: 75, Trend: models.TrendStable, Description: "Good surveillance coverage"},
		},
		Areas: []models.AreaScore{
			{Area: "Downtown Plaza", Score: 92, Status: "Very Safe"},
			{Area: "Main Street", Score: 88, Status: "Safe"},
			{Area: "Park Avenue", Score: 85, Status: "Safe"},
			{Area: "Oak Street", Score: 72, Status: "Moderate"},
			{Area: "Side Streets", Score: 65, Status: "Caution"},
			{Area: "Industrial Area", Score: 45, Status: "Avoid"},
		},
		Hourly: []models.HourlyScore{
			{TimeLabel: "6 AM", Score: 78},
			{TimeLabel: "9 AM", Score: 85},
			{TimeLabel: "12 PM", Score: 88},
			{TimeLabel: "3 PM", Score: 90},
			{TimeLabel: "6 PM", Score: 85},
			{TimeLabel: "9 PM", Score: 75},
			{TimeLabel: "12 AM", Score: 65},
		},
	}
}

// OfflineRoutes returns the routes listed on the offline screen
func OfflineRoutes() []models.OfflineRoute {
	return []models.OfflineRoute{
		{ID: 1, Name: "Home to Work", DistanceLabel: "2.3 km", EstimatedTimeLabel: "15 min", SafetyScore: 88, LastUpdatedLabel: "2 hours ago", Downloaded: true},
		{ID: 2, Name: "Home to Gym", DistanceLabel: "1.8 km", EstimatedTimeLabel: "12 min", SafetyScore: 92, LastUpdatedLabel: "1 day ago", Downloaded: true},
		{ID: 3, Name: "Work to Shopping Center", DistanceLabel: "3.1 km", EstimatedTimeLabel: "20 min", SafetyScore: 85, LastUpdatedLabel: "3 hours ago"},
	}
}

// EmergencyNumbers returns the numbers the offline screen can text
func EmergencyNumbers() []models.EmergencyNumber {
	return []models.EmergencyNumber{
		{Name: "Emergency Services", Number: "911", Kind: "emergency"},
		{Name: "Mom", Number: "+1 (555) 123-4567", Kind: "family"},
		{Name: "Sarah", Number: "+1 (555) 987-6543", Kind: "friend"},
		{Name: "Local Police", Number: "+1 (555) 555-0199", Kind: "police"},
	}
}

// Personas returns the voice guidance personas
func Personas() []models.Persona {
	return []models.Persona{
		{ID: models.PersonaAdult, Name: "Standard Mode", Description: "Normal voice navigation for adults", Features: []string{"Standard voice commands", "Regular update frequency", "Technical terms allowed"}},
		{ID: models.PersonaElder, Name: "Elder-Friendly Mode", Description: "Simplified navigation for elderly users", Features: []string{"Slower speech", "Simplified directions", "Larger text display", "Emergency shortcuts"}},
		{ID: models.PersonaChild, Name: "Child Mode", Description: "Safe navigation assistance for children", Features: []string{"Simple language", "Frequent check-ins", "Parent notifications", "Safe zone alerts"}},
	}
}

// VoiceCommands returns the example phrases shown on the voice screen
func VoiceCommands() []string {
	return []string{
		"Navigate to [destination]",
		"Find safest route",
		"Call emergency contact",
		"Share my location",
		"What's my safety score?",
		"Find well-lit route",
		"Cancel navigation",
		"Repeat last instruction",
	}
}
