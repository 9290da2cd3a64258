package insights

import (
	"time"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

// Horizon is the time scope of a prediction.
type Horizon string

const (
	HorizonShort  Horizon = "short"
	HorizonMedium Horizon = "medium"
	HorizonLong   Horizon = "long"
)

// Fixed per-horizon probabilities; they do not depend on which rung matched.
const (
	shortTermProbability  = 0.87
	mediumTermProbability = 0.74
	longTermProbability   = 0.62
)

// Prediction is a horizon-scoped forecast statement.
type Prediction struct {
	Horizon     Horizon `json:"horizon"`
	Timeframe   string  `json:"timeframe"`
	Condition   string  `json:"condition"`
	Probability float64 `json:"probability"`
	Reasoning   string  `json:"reasoning"`
}

// rung is one step of a prediction ladder; a nil test always matches.
type rung struct {
	test      func(weather.Observation) bool
	condition string
}

var shortTermLadder = []rung{
	{test: func(o weather.Observation) bool { return o.Humidity > 85 }, condition: "Light rain possible"},
	{test: func(o weather.Observation) bool { return o.Pressure < 1000 }, condition: "Cloudy with possible showers"},
	{test: func(o weather.Observation) bool { return o.WindSpeed > 20 }, condition: "Windy conditions continuing"},
	{condition: "Current conditions stable"},
}

var mediumTermLadder = []rung{
	{test: func(o weather.Observation) bool { return o.Pressure < 1005 }, condition: "Increasing cloud cover"},
	{test: func(o weather.Observation) bool { return o.Temperature > 20 }, condition: "Partly cloudy, temperatures stable"},
	{condition: "Clear to partly cloudy"},
}

func climb(ladder []rung, obs weather.Observation) string {
	for _, r := range ladder {
		if r.test == nil || r.test(obs) {
			return r.condition
		}
	}
	return ""
}

// Season is a meteorological season.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// SeasonOf maps a calendar month onto its season using fixed month ranges.
func SeasonOf(m time.Month) Season {
	switch {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.June && m <= time.August:
		return SeasonSummer
	case m >= time.September && m <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

var seasonalOutlook = map[Season]string{
	SeasonSpring: "Variable conditions typical for spring",
	SeasonSummer: "Warming trend with occasional showers",
	SeasonAutumn: "Cooling trend with changeable conditions",
	SeasonWinter: "Cool temperatures with possible precipitation",
}

// GeneratePredictions returns the short, medium and long horizon predictions, in that order.
// now selects the season for the long horizon.
func GeneratePredictions(obs weather.Observation, now time.Time) []Prediction {
	return []Prediction{
		{
			Horizon:     HorizonShort,
			Timeframe:   "Next 1-3 hours",
			Condition:   climb(shortTermLadder, obs),
			Probability: shortTermProbability,
			Reasoning:   "Based on current atmospheric pressure trends and humidity levels",
		},
		{
			Horizon:     HorizonMedium,
			Timeframe:   "Next 6-12 hours",
			Condition:   climb(mediumTermLadder, obs),
			Probability: mediumTermProbability,
			Reasoning:   "Analyzing wind patterns and temperature gradients",
		},
		{
			Horizon:     HorizonLong,
			Timeframe:   "Next 24-48 hours",
			Condition:   seasonalOutlook[SeasonOf(now.Month())],
			Probability: longTermProbability,
			Reasoning:   "Historical pattern matching and seasonal trend analysis",
		},
	}
}

// predictionFor returns the prediction for horizon h.
func predictionFor(preds []Prediction, h Horizon) (Prediction, bool) {
	for _, p := range preds {
		if p.Horizon == h {
			return p, true
		}
	}
	return Prediction{}, false
}
