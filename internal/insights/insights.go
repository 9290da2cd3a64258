package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

// InsightKind is the kind of a user-facing insight.
type InsightKind string

const (
	KindPrediction     InsightKind = "prediction"
	KindRecommendation InsightKind = "recommendation"
	KindAlert          InsightKind = "alert"
	KindTrend          InsightKind = "trend"
)

// Priority orders insights for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Source tags how an insight was derived.
type Source string

const (
	SourcePatternAnalysis    Source = "pattern_analysis"
	SourceHistoricalData     Source = "historical_data"
	SourceRealTimeMonitoring Source = "real_time_monitoring"
)

// Insight is a synthesized, user-facing statement.
type Insight struct {
	ID            string      `json:"id"`
	Kind          InsightKind `json:"type"`
	Title         string      `json:"title"`
	Body          string      `json:"body"`
	Confidence    float64     `json:"confidence"`
	Priority      Priority    `json:"priority"`
	Source        Source      `json:"source"`
	UserRelevance float64     `json:"userRelevance"`
	CreatedAt     time.Time   `json:"createdAt"`
}

const (
	alertPressure  = 1005.0
	urgentPressure = 980.0
)

// InsightInput carries everything the insight generator composes from.
type InsightInput struct {
	Observation     weather.Observation
	Location        string
	User            string
	Forecast        []weather.ForecastDay
	Predictions     []Prediction
	Recommendations []Recommendation
	Now             time.Time
	NewID           func() string
}

// GenerateInsights builds the alert (when pressure is low), comfort, trend,
// prediction and, for a known user, personalized insights.
func GenerateInsights(in InsightInput) []Insight {
	newID := in.NewID
	if newID == nil {
		newID = func() string { return fmt.Sprintf("%d", in.Now.UnixNano()) }
	}
	id := func(prefix string) string { return prefix + "_" + newID() }

	obs := in.Observation
	where := locationLabel(in.Location, obs.Location)

	var out []Insight

	if obs.Pressure < alertPressure {
		priority := PriorityHigh
		if obs.Pressure < urgentPressure {
			priority = PriorityUrgent
		}
		out = append(out, Insight{
			ID:    id("alert"),
			Kind:  KindAlert,
			Title: "Low Pressure System Approaching",
			Body: fmt.Sprintf("A low pressure system (%.0f mb) over %s may bring weather changes. "+
				"Consider checking updated forecasts.", obs.Pressure, where),
			Confidence:    0.89,
			Priority:      priority,
			Source:        SourceRealTimeMonitoring,
			UserRelevance: 0.92,
			CreatedAt:     in.Now,
		})
	}

	out = append(out, comfortInsight(id("comfort"), obs, where, in.Recommendations, in.Now))
	out = append(out, trendInsight(id("trend"), in.Forecast, in.Predictions, in.Now))

	if p, ok := predictionFor(in.Predictions, HorizonMedium); ok {
		out = append(out, Insight{
			ID:    id("prediction"),
			Kind:  KindPrediction,
			Title: "Weather Outlook",
			Body: fmt.Sprintf("%.0f%% probability of %s over the %s, based on current atmospheric dynamics.",
				p.Probability*100, strings.ToLower(p.Condition), strings.ToLower(p.Timeframe)),
			Confidence:    p.Probability,
			Priority:      PriorityMedium,
			Source:        SourcePatternAnalysis,
			UserRelevance: 0.88,
			CreatedAt:     in.Now,
		})
	}

	if in.User != "" && len(in.Recommendations) > 0 {
		top := bestRecommendation(in.Recommendations)
		out = append(out, Insight{
			ID:    id("personal"),
			Kind:  KindRecommendation,
			Title: fmt.Sprintf("Personalized Advice for %s", in.User),
			Body: fmt.Sprintf("Based on conditions in %s, %s is your best option right now. %s.",
				where, strings.ToLower(top.Title), top.Reasoning),
			Confidence:    top.Suitability,
			Priority:      PriorityMedium,
			Source:        SourcePatternAnalysis,
			UserRelevance: 0.94,
			CreatedAt:     in.Now,
		})
	}

	return out
}

func comfortInsight(id string, obs weather.Observation, where string, recs []Recommendation, now time.Time) Insight {
	title := "Current Comfort Conditions"
	for _, r := range recs {
		if r.Category == CategoryActivity {
			title = "Optimal Comfort Conditions"
			break
		}
	}

	return Insight{
		ID:    id,
		Kind:  KindRecommendation,
		Title: title,
		Body: fmt.Sprintf("Current conditions in %s (%.0f°C, %.0f%% humidity, dew point %.0f°C) feel %s. %s",
			where, obs.Temperature, obs.Humidity, obs.DewPoint, comfortWord(obs.Comfort), uvAdvice(obs.UVCategory)),
		Confidence:    0.95,
		Priority:      PriorityMedium,
		Source:        SourcePatternAnalysis,
		UserRelevance: 0.85,
		CreatedAt:     now,
	}
}

func trendInsight(id string, days []weather.ForecastDay, preds []Prediction, now time.Time) Insight {
	ins := Insight{
		ID:            id,
		Kind:          KindTrend,
		Confidence:    0.78,
		Priority:      PriorityLow,
		Source:        SourceHistoricalData,
		UserRelevance: 0.76,
		CreatedAt:     now,
	}

	if len(days) >= 2 {
		first, last := days[0], days[len(days)-1]
		delta := last.MaxTemp - first.MaxTemp
		ins.Title = "Temperature Trend"
		switch {
		case delta >= 1:
			ins.Body = fmt.Sprintf("A warming trend over the next %d days, with highs rising about %.0f°C.", len(days), delta)
		case delta <= -1:
			ins.Body = fmt.Sprintf("A cooling trend over the next %d days, with highs falling about %.0f°C.", len(days), -delta)
		default:
			ins.Body = fmt.Sprintf("Temperatures stay steady over the next %d days.", len(days))
		}
		return ins
	}

	ins.Title = "Seasonal Trend"
	if p, ok := predictionFor(preds, HorizonLong); ok {
		ins.Body = fmt.Sprintf("%s over the %s, in line with seasonal patterns.", p.Condition, strings.ToLower(p.Timeframe))
	} else {
		ins.Body = "No trend information available."
	}
	return ins
}

func bestRecommendation(recs []Recommendation) Recommendation {
	best := recs[0]
	for _, r := range recs[1:] {
		if r.Suitability > best.Suitability {
			best = r
		}
	}
	return best
}

func locationLabel(requested string, loc weather.Location) string {
	if s := strings.TrimSpace(requested); s != "" {
		return s
	}
	if loc.Name != "" {
		return loc.Name
	}
	return "your area"
}

func comfortWord(c weather.Comfort) string {
	switch c {
	case weather.ComfortUncomfortable:
		return "muggy"
	case weather.ComfortComfortable:
		return "comfortable"
	default:
		return "dry"
	}
}

func uvAdvice(c weather.UVCategory) string {
	switch c {
	case weather.UVLow:
		return "UV index is low."
	case weather.UVModerate:
		return "UV index is moderate, sunscreen recommended."
	default:
		return "UV index is high, limit midday sun exposure."
	}
}
