package models

// ScoreBand is the coarse classification of a 0-100 safety score
type ScoreBand string

const (
	ScoreBandGood     ScoreBand = "good"
	ScoreBandModerate ScoreBand = "moderate"
	ScoreBandCaution  ScoreBand = "caution"
	ScoreBandDanger   ScoreBand = "danger"
)

// BandFor classifies a safety score
func BandFor(score int) ScoreBand {
	switch {
	case score >= 85:
		return ScoreBandGood
	case score >= 70:
		return ScoreBandModerate
	case score >= 50:
		return ScoreBandCaution
	default:
		return ScoreBandDanger
	}
}

// Color returns the colour family for the band
func (b ScoreBand) Color() string {
	switch b {
	case ScoreBandGood:
		return "green"
	case ScoreBandModerate:
		return "yellow"
	case ScoreBandCaution:
		return "orange"
	default:
		return "red"
	}
}

// Trend is the short-term direction of a safety factor
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// SafetyFactor is one contributor to the area safety score
type SafetyFactor struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Score       int    `json:"score"`
	Trend       Trend  `json:"trend"`
	Description string `json:"description"`
}

// AreaScore is the safety score of a nearby area
type AreaScore struct {
	Area   string `json:"area"`
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// Band returns the safety band of the area
func (a AreaScore) Band() ScoreBand {
	return BandFor(a.Score)
}

// HourlyScore is one point of the daily safety trend
type HourlyScore struct {
	TimeLabel string `json:"time_label"`
	Score     int    `json:"score"`
}

// Band returns the safety band of the hourly point
func (h HourlyScore) Band() ScoreBand {
	return BandFor(h.Score)
}

// SafetyReport bundles everything the safety score screen shows
type SafetyReport struct {
	CurrentScore int            `json:"current_score"`
	Factors      []SafetyFactor `json:"factors"`
	Areas        []AreaScore    `json:"areas"`
	Hourly       []HourlyScore  `json:"hourly"`
}

// Band returns the safety band of the current score
func (r SafetyReport) Band() ScoreBand {
	return BandFor(r.CurrentScore)
}
