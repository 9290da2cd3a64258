package insights

import "github.com/i474232898/weather-intelligence/internal/weather"

// PatternType names a heuristic classification of an observation.
type PatternType string

const (
	PatternPressureDrop    PatternType = "pressure_drop"
	PatternTemperatureRise PatternType = "temperature_rise"
	PatternHumiditySpike   PatternType = "humidity_spike"
	PatternWindIncrease    PatternType = "wind_increase"
	PatternStable          PatternType = "stable"
)

// Severity grades the expected impact of a pattern.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Pattern is one finding of the pattern analyzer.
type Pattern struct {
	Type        PatternType `json:"type"`
	Confidence  float64     `json:"confidence"`
	Severity    Severity    `json:"severity"`
	Description string      `json:"description"`
	Timeframe   string      `json:"timeframe"`
}

type patternRule struct {
	pattern Pattern
	fires   func(weather.Observation) bool
}

// Rules are independent; each one that fires contributes a pattern.
var patternRules = []patternRule{
	{
		pattern: Pattern{
			Type:        PatternPressureDrop,
			Confidence:  0.85,
			Severity:    SeverityHigh,
			Description: "Significant atmospheric pressure drop detected",
			Timeframe:   "Next 6-12 hours",
		},
		fires: func(o weather.Observation) bool { return o.Pressure < 1000 },
	},
	{
		pattern: Pattern{
			Type:        PatternTemperatureRise,
			Confidence:  0.72,
			Severity:    SeverityMedium,
			Description: "Warming trend identified based on current conditions",
			Timeframe:   "Next 24 hours",
		},
		fires: func(o weather.Observation) bool { return o.Temperature > 20 },
	},
	{
		pattern: Pattern{
			Type:        PatternHumiditySpike,
			Confidence:  0.91,
			Severity:    SeverityMedium,
			Description: "High humidity levels may indicate incoming precipitation",
			Timeframe:   "Next 2-4 hours",
		},
		fires: func(o weather.Observation) bool { return o.Humidity > 80 },
	},
	{
		pattern: Pattern{
			Type:        PatternWindIncrease,
			Confidence:  0.78,
			Severity:    SeverityHigh,
			Description: "Strong wind patterns detected, possible weather system approach",
			Timeframe:   "Current conditions",
		},
		fires: func(o weather.Observation) bool { return o.WindSpeed > 25 },
	},
}

var stablePattern = Pattern{
	Type:        PatternStable,
	Confidence:  0.88,
	Severity:    SeverityLow,
	Description: "Weather conditions appear stable with minimal variation expected",
	Timeframe:   "Next 12-24 hours",
}

// AnalyzePatterns classifies an observation. The result is never empty: when no
// specific rule fires it holds exactly one stable pattern.
func AnalyzePatterns(obs weather.Observation) []Pattern {
	var patterns []Pattern
	for _, r := range patternRules {
		if r.fires(obs) {
			patterns = append(patterns, r.pattern)
		}
	}
	if len(patterns) == 0 {
		patterns = append(patterns, stablePattern)
	}
	return patterns
}
