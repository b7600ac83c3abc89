// Package progress derives the trip figures shown next to the current step.
//
// The figures are linear decays with floors over the step index. They are
// not computed from route geometry.
package progress

import "math"

// Projection is what the navigation screen displays for a step index
type Projection struct {
	ProgressPercent float64 `json:"progress_percent"`
	ETAMinutes      int     `json:"eta_minutes"`
	DistanceKm      float64 `json:"distance_km"`
}

// Projector maps a step index to displayed trip figures
type Projector struct {
	Steps             int
	ETABase           int
	ETADecrement      int
	DistanceBase      float64
	DistanceDecrement float64
}

// NavigationProjector returns the projector used by the route navigation screen
func NavigationProjector(steps int) Projector {
	return Projector{
		Steps:             steps,
		ETABase:           18,
		ETADecrement:      4,
		DistanceBase:      1.2,
		DistanceDecrement: 0.3,
	}
}

const (
	minETAMinutes = 1
	minDistanceKm = 0.1
)

// Project computes the figures for index. Indexes outside [0, Steps) are
// taken modulo Steps.
func (p Projector) Project(index int) Projection {
	if p.Steps <= 0 {
		return Projection{ETAMinutes: minETAMinutes, DistanceKm: minDistanceKm}
	}
	index = ((index % p.Steps) + p.Steps) % p.Steps

	eta := p.ETABase - index*p.ETADecrement
	if eta < minETAMinutes {
		eta = minETAMinutes
	}

	distance := round1(p.DistanceBase - float64(index)*p.DistanceDecrement)
	if distance < minDistanceKm {
		distance = minDistanceKm
	}

	return Projection{
		ProgressPercent: float64(index+1) * (100 / float64(p.Steps)),
		ETAMinutes:      eta,
		DistanceKm:      distance,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
