package models

// Maneuver describes what the walker does at a navigation step
type Maneuver string

const (
	ManeuverStraight    Maneuver = "straight"
	ManeuverTurnLeft    Maneuver = "turn-left"
	ManeuverTurnRight   Maneuver = "turn-right"
	ManeuverDestination Maneuver = "destination"
)

// NavigationStep is one instruction in a fixed walking sequence
type NavigationStep struct {
	Instruction   string   `json:"instruction"`
	DistanceLabel string   `json:"distance_label"`
	SafetyNote    string   `json:"safety_note"`
	Maneuver      Maneuver `json:"maneuver"`
}

// LiveMetrics are the area indicators shown beside an active navigation
type LiveMetrics struct {
	CurrentArea  int `json:"current_area"`
	Lighting     int `json:"lighting"`
	CrowdDensity int `json:"crowd_density"`
	CCTV         int `json:"cctv"`
}
