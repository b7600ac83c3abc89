package models

// RouteOption is one candidate path offered by the route planner
type RouteOption struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	DurationLabel string   `json:"duration_label"`
	DistanceLabel string   `json:"distance_label"`
	SafetyScore   int      `json:"safety_score"`
	Lighting      int      `json:"lighting"`
	CrowdDensity  int      `json:"crowd_density"`
	Incidents     int      `json:"incidents"`
	Description   string   `json:"description"`
	Waypoints     []string `json:"waypoints"`
}

// Band returns the safety band of the route score
func (r RouteOption) Band() ScoreBand {
	return BandFor(r.SafetyScore)
}

// OfflineRoute is a route that can be cached for use without a connection
type OfflineRoute struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	DistanceLabel      string `json:"distance_label"`
	EstimatedTimeLabel string `json:"estimated_time_label"`
	SafetyScore        int    `json:"safety_score"`
	LastUpdatedLabel   string `json:"last_updated_label"`
	Downloaded         bool   `json:"downloaded"`
}
