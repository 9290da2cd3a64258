package insights

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

// Request is the input of one analysis.
type Request struct {
	Observation weather.Observation   `json:"observation"`
	Location    string                `json:"location,omitempty" validate:"max=200"`
	User        string                `json:"user,omitempty" validate:"max=128"`
	Forecast    []weather.ForecastDay `json:"forecast,omitempty" validate:"max=10"`
	// Now is the caller's wall-clock time; zero means the engine clock.
	Now time.Time `json:"-"`
}

// Report is the output of one analysis.
type Report struct {
	Patterns        []Pattern        `json:"patterns"`
	Predictions     []Prediction     `json:"predictions"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Engine runs the pattern, prediction, insight and recommendation stages.
type Engine struct {
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithClock overrides the clock used when a request carries no time.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides insight id generation.
func WithIDGenerator(newID func() string) EngineOption {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an Engine using the wall clock and random UUIDs unless overridden.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze validates the request and runs every stage. A malformed observation fails
// with a validation error and no partial report.
func (e *Engine) Analyze(req Request) (Report, error) {
	if err := e.Validate(req); err != nil {
		return Report{}, err
	}

	now := req.Now
	if now.IsZero() {
		now = e.now()
	}
	now = now.UTC()

	// Derived fields are recomputed so callers may post raw measurements only.
	obs := req.Observation.Derive()
	preds := GeneratePredictions(obs, now)
	recs := GenerateRecommendations(obs)

	return Report{
		Patterns:    AnalyzePatterns(obs),
		Predictions: preds,
		Insights: GenerateInsights(InsightInput{
			Observation:     obs,
			Location:        req.Location,
			User:            req.User,
			Forecast:        req.Forecast,
			Predictions:     preds,
			Recommendations: recs,
			Now:             now,
			NewID:           e.newID,
		}),
		Recommendations: recs,
	}, nil
}

// Validate checks the request against the observation contract.
func (e *Engine) Validate(req Request) error {
	if err := checkFinite(req.Observation); err != nil {
		return err
	}
	if err := e.validate.Struct(req.Observation); err != nil {
		return validationError("observation", err)
	}
	if err := e.validate.Struct(req); err != nil {
		return validationError("request", err)
	}
	return nil
}

func checkFinite(o weather.Observation) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"temperature", o.Temperature},
		{"feelsLike", o.FeelsLike},
		{"humidity", o.Humidity},
		{"pressure", o.Pressure},
		{"windSpeed", o.WindSpeed},
		{"visibility", o.Visibility},
		{"uvIndex", o.UVIndex},
		{"precipitation", o.Precipitation},
		{"cloud", o.Cloud},
		{"dewPoint", o.DewPoint},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return weather.NewValidationError(fmt.Sprintf("observation.%s must be a finite number", f.name))
		}
	}
	return nil
}

func validationError(scope string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return weather.NewValidationError(fmt.Sprintf("invalid %s: %v", scope, err))
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
	}
	return weather.NewValidationError(fmt.Sprintf("invalid %s: %s", scope, strings.Join(msgs, "; ")))
}
