package models

// AlertKind drives the icon and colour of an alert
type AlertKind string

const (
	AlertKindWarning AlertKind = "warning"
	AlertKindInfo    AlertKind = "info"
	AlertKindSuccess AlertKind = "success"
)

// Severity represents the priority attached to an alert
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AlertCategory groups alerts for filtering
type AlertCategory string

const (
	AlertCategoryTraffic AlertCategory = "traffic"
	AlertCategoryRoute   AlertCategory = "route"
	AlertCategoryContact AlertCategory = "contact"
	AlertCategorySafety  AlertCategory = "safety"
	AlertCategoryWeather AlertCategory = "weather"
)

// AlertCategories lists the categories in display order
var AlertCategories = []AlertCategory{
	AlertCategoryTraffic,
	AlertCategoryRoute,
	AlertCategoryContact,
	AlertCategorySafety,
	AlertCategoryWeather,
}

// AlertRecord is a single safety notification
type AlertRecord struct {
	ID        int           `json:"id"`
	Kind      AlertKind     `json:"kind"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Location  string        `json:"location"`
	TimeLabel string        `json:"time_label"`
	Severity  Severity      `json:"severity"`
	Read      bool          `json:"read"`
	Category  AlertCategory `json:"category"`
}

// SeverityLabel returns the badge text for the alert severity
func (a AlertRecord) SeverityLabel() string {
	switch a.Severity {
	case SeverityHigh:
		return "High Priority"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	default:
		return ""
	}
}

// Tone returns the colour family used to render the alert card.
// High severity wins over the kind.
func (a AlertRecord) Tone() string {
	if a.Severity == SeverityHigh {
		return "red"
	}
	switch a.Kind {
	case AlertKindWarning:
		return "orange"
	case AlertKindSuccess:
		return "green"
	default:
		return "blue"
	}
}
