package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

// NarrativeSource tells a consumer whether narrative text came from the live model.
type NarrativeSource string

const (
	NarrativeLive     NarrativeSource = "live"
	NarrativeFallback NarrativeSource = "fallback"
)

// FallbackModel is the model tag carried by non-authoritative fallback narratives.
const FallbackModel = "fallback-system"

// NarrativeRequest is the input sent to a narrator.
type NarrativeRequest struct {
	Observation weather.Observation `json:"observation"`
	Location    string              `json:"location,omitempty"`
	User        string              `json:"user,omitempty"`
	Now         time.Time           `json:"-"`
}

// Narrative is supplementary free-text analysis of an observation.
type Narrative struct {
	Analysis       string          `json:"analysis"`
	Prediction     string          `json:"prediction"`
	Confidence     float64         `json:"confidence"`
	Recommendation string          `json:"recommendation"`
	Alert          *string         `json:"alert"`
	Reasoning      string          `json:"reasoning"`
	Timestamp      time.Time       `json:"timestamp"`
	User           string          `json:"user,omitempty"`
	Model          string          `json:"model"`
	TokensUsed     int             `json:"tokensUsed"`
	Source         NarrativeSource `json:"source"`
}

// Narrator produces a narrative for an observation.
type Narrator interface {
	Narrate(ctx context.Context, req NarrativeRequest) (Narrative, error)
}

// StaticNarrator builds a canned narrative from the heuristic stages. It never fails
// and always tags its output as fallback.
type StaticNarrator struct{}

func (StaticNarrator) Narrate(_ context.Context, req NarrativeRequest) (Narrative, error) {
	obs := req.Observation.Derive()
	patterns := AnalyzePatterns(obs)
	preds := GeneratePredictions(obs, req.Now)
	recs := GenerateRecommendations(obs)

	descs := make([]string, 0, len(patterns))
	for _, p := range patterns {
		descs = append(descs, p.Description)
	}

	n := Narrative{
		Analysis:   strings.Join(descs, ". ") + ".",
		Prediction: "Conditions expected to remain similar for the next 6 hours.",
		// Canned confidence; fallback text is not authoritative.
		Confidence:     0.7,
		Recommendation: "Check back later for updated insights.",
		Reasoning:      "Analysis based on current atmospheric pressure, humidity and wind readings.",
		Timestamp:      req.Now,
		User:           req.User,
		Model:          FallbackModel,
		Source:         NarrativeFallback,
	}
	if p, ok := predictionFor(preds, HorizonMedium); ok {
		n.Prediction = fmt.Sprintf("%s over the %s.", p.Condition, strings.ToLower(p.Timeframe))
	}
	if len(recs) > 0 {
		top := bestRecommendation(recs)
		n.Recommendation = fmt.Sprintf("%s: %s.", top.Title, top.Description)
	}
	if obs.Pressure < alertPressure {
		alert := fmt.Sprintf("Low pressure (%.0f mb) may bring weather changes.", obs.Pressure)
		n.Alert = &alert
	}
	return n, nil
}

// FallbackNarrator asks Primary first and answers from Fallback when Primary fails.
// The primary error is logged, never returned.
type FallbackNarrator struct {
	Primary  Narrator
	Fallback Narrator
	Logger   *slog.Logger
}

func (f FallbackNarrator) Narrate(ctx context.Context, req NarrativeRequest) (Narrative, error) {
	if f.Primary != nil {
		n, err := f.Primary.Narrate(ctx, req)
		if err == nil {
			return n, nil
		}
		logger := f.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("live narrative failed, using fallback", "kind", weather.KindOf(err), "err", err)
	}

	fallback := f.Fallback
	if fallback == nil {
		fallback = StaticNarrator{}
	}
	n, err := fallback.Narrate(ctx, req)
	if err != nil {
		return Narrative{}, err
	}
	n.Source = NarrativeFallback
	if n.Model == "" {
		n.Model = FallbackModel
	}
	return n, nil
}
