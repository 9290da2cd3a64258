package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-intelligence/internal/insights"
	"github.com/i474232898/weather-intelligence/internal/weather"
)

var validate = validator.New()

const defaultForecastDays = 7

// Handlers holds the dependencies of the API routes.
type Handlers struct {
	Service  *weather.Service
	Engine   *insights.Engine
	Narrator insights.Narrator
	// Now is the request clock handed to the engine; defaults to time.Now.
	Now func() time.Time
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h Handlers) {
	if h.Now == nil {
		h.Now = time.Now
	}
	if h.Narrator == nil {
		h.Narrator = insights.StaticNarrator{}
	}

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", h.current)
	v1.Get("/weather/forecast", h.forecast)
	v1.Get("/weather/history", h.history)
	v1.Get("/locations/search", h.search)
	v1.Get("/insights", h.insightsForLocation)
	v1.Post("/insights", h.analyze)
	v1.Post("/insights/narrative", h.narrative)
}

func (h Handlers) current(c *fiber.Ctx) error {
	var q locationQuery
	if err := q.bind(c); err != nil {
		return err
	}

	obs, err := h.Service.Current(c.UserContext(), q.query())
	if err != nil {
		return err
	}
	return c.JSON(obs)
}

func (h Handlers) forecast(c *fiber.Ctx) error {
	var q locationQuery
	if err := q.bind(c); err != nil {
		return err
	}
	days, err := parseDays(c.Query("days"))
	if err != nil {
		return err
	}

	fc, err := h.Service.Forecast(c.UserContext(), q.query(), days)
	if err != nil {
		return err
	}
	return c.JSON(fc)
}

func (h Handlers) search(c *fiber.Ctx) error {
	results, err := h.Service.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(results)
}

func (h Handlers) history(c *fiber.Ctx) error {
	var req historyQuery
	if err := req.bind(c); err != nil {
		return weather.NewValidationError(err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return weather.NewValidationError(err.Error())
	}

	snapshots, err := h.Service.History(c.UserContext(), req.Location, req.From, req.To)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"location":  req.Location,
		"from":      req.From,
		"to":        req.To,
		"snapshots": snapshots,
	})
}

func (h Handlers) insightsForLocation(c *fiber.Ctx) error {
	var q locationQuery
	if err := q.bind(c); err != nil {
		return err
	}
	days, err := parseDays(c.Query("days"))
	if err != nil {
		return err
	}

	overview, err := h.Service.Overview(c.UserContext(), q.query(), days)
	if err != nil {
		return err
	}

	report, err := h.Engine.Analyze(insights.Request{
		Observation: overview.Current,
		Location:    q.Location,
		User:        strings.TrimSpace(c.Query("user")),
		Forecast:    overview.Days,
		Now:         h.Now(),
	})
	if err != nil {
		return err
	}
	return c.JSON(report)
}

func (h Handlers) analyze(c *fiber.Ctx) error {
	var req insights.Request
	if err := c.BodyParser(&req); err != nil {
		return weather.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	req.Now = h.Now()

	report, err := h.Engine.Analyze(req)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

func (h Handlers) narrative(c *fiber.Ctx) error {
	var req insights.NarrativeRequest
	if err := c.BodyParser(&req); err != nil {
		return weather.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	if err := h.Engine.Validate(insights.Request{Observation: req.Observation, Location: req.Location, User: req.User}); err != nil {
		return err
	}
	req.Now = h.Now()

	n, err := h.Narrator.Narrate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(n)
}

// locationQuery identifies a location by name or by coordinates.
type locationQuery struct {
	Location string
	Lat      *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon      *float64 `validate:"omitempty,gte=-180,lte=180"`
}

func (l *locationQuery) bind(c *fiber.Ctx) error {
	l.Location = strings.TrimSpace(c.Query("location"))

	var err error
	if l.Lat, err = parseOptionalFloat(c.Query("lat"), "lat"); err != nil {
		return err
	}
	if l.Lon, err = parseOptionalFloat(c.Query("lon"), "lon"); err != nil {
		return err
	}

	if l.Location == "" && (l.Lat == nil || l.Lon == nil) {
		return weather.NewValidationError("location parameter or lat/lon coordinates are required")
	}
	if err := validate.Struct(l); err != nil {
		return weather.NewValidationError(err.Error())
	}
	return nil
}

// query prefers coordinates when both are given.
func (l locationQuery) query() string {
	if l.Lat != nil && l.Lon != nil {
		return weather.CoordinatesQuery(*l.Lat, *l.Lon)
	}
	return l.Location
}

func parseOptionalFloat(s, name string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, weather.NewValidationError(fmt.Sprintf("%s must be a number", name))
	}
	return &f, nil
}

// parseDays reads the days parameter; out-of-range values are clamped later, not rejected.
func parseDays(s string) (int, error) {
	if s == "" {
		return defaultForecastDays, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, weather.NewValidationError("days must be an integer")
	}
	return n, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location string    `validate:"required"`
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.Location = strings.TrimSpace(c.Query("location"))

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
