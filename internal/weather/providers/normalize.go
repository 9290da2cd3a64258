package providers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

// flexFloat accepts a JSON number or a numeric string ("86").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type apiCondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

type apiLocation struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
	Localtime      string  `json:"localtime"`
}

// apiCurrent keeps metric and imperial siblings as pointers so a missing metric
// field can be told apart from a zero reading.
type apiCurrent struct {
	LastUpdatedEpoch int64        `json:"last_updated_epoch"`
	TempC            *float64     `json:"temp_c"`
	TempF            *float64     `json:"temp_f"`
	IsDay            int          `json:"is_day"`
	Condition        apiCondition `json:"condition"`
	WindKph          *float64     `json:"wind_kph"`
	WindMph          *float64     `json:"wind_mph"`
	WindDegree       int          `json:"wind_degree"`
	WindDir          string       `json:"wind_dir"`
	PressureMb       *float64     `json:"pressure_mb"`
	PressureIn       *float64     `json:"pressure_in"`
	PrecipMm         *float64     `json:"precip_mm"`
	PrecipIn         *float64     `json:"precip_in"`
	Humidity         flexFloat    `json:"humidity"`
	Cloud            flexFloat    `json:"cloud"`
	FeelslikeC       *float64     `json:"feelslike_c"`
	FeelslikeF       *float64     `json:"feelslike_f"`
	VisKm            *float64     `json:"vis_km"`
	VisMiles         *float64     `json:"vis_miles"`
	UV               flexFloat    `json:"uv"`
}

type apiForecastDay struct {
	Date string `json:"date"`
	Day  struct {
		MaxtempC          *float64     `json:"maxtemp_c"`
		MaxtempF          *float64     `json:"maxtemp_f"`
		MintempC          *float64     `json:"mintemp_c"`
		MintempF          *float64     `json:"mintemp_f"`
		MaxwindKph        *float64     `json:"maxwind_kph"`
		MaxwindMph        *float64     `json:"maxwind_mph"`
		TotalprecipMm     *float64     `json:"totalprecip_mm"`
		TotalprecipIn     *float64     `json:"totalprecip_in"`
		Avghumidity       flexFloat    `json:"avghumidity"`
		DailyChanceOfRain flexFloat    `json:"daily_chance_of_rain"`
		Condition         apiCondition `json:"condition"`
		UV                flexFloat    `json:"uv"`
	} `json:"day"`
	Astro struct {
		Sunrise   string `json:"sunrise"`
		Sunset    string `json:"sunset"`
		MoonPhase string `json:"moon_phase"`
	} `json:"astro"`
}

type apiResponse struct {
	Location *apiLocation `json:"location"`
	Current  *apiCurrent  `json:"current"`
	Forecast *struct {
		ForecastDay []apiForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type apiSearchResult struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// metric returns the metric value, converting the imperial sibling when only it is present.
func metric(m, imperial *float64, convert func(float64) float64) (float64, bool) {
	switch {
	case m != nil:
		return *m, true
	case imperial != nil:
		return convert(*imperial), true
	default:
		return 0, false
	}
}

func decodeResponse(raw []byte) (apiResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return apiResponse{}, weather.NewParseError("failed to parse provider response", err)
	}
	if resp.Location == nil {
		return apiResponse{}, weather.NewParseError("provider response has no location", nil)
	}
	if resp.Current == nil {
		return apiResponse{}, weather.NewParseError("provider response has no current conditions", nil)
	}
	return resp, nil
}

// NormalizeCurrent converts a WeatherAPI current.json (or forecast.json) payload into an Observation.
func NormalizeCurrent(raw []byte) (weather.Observation, error) {
	resp, err := decodeResponse(raw)
	if err != nil {
		return weather.Observation{}, err
	}
	return normalizeObservation(*resp.Location, *resp.Current)
}

// NormalizeForecast converts a WeatherAPI forecast.json payload into the current
// observation plus the ordered daily forecast.
func NormalizeForecast(raw []byte) (weather.Forecast, error) {
	resp, err := decodeResponse(raw)
	if err != nil {
		return weather.Forecast{}, err
	}
	if resp.Forecast == nil {
		return weather.Forecast{}, weather.NewParseError("provider response has no forecast", nil)
	}

	current, err := normalizeObservation(*resp.Location, *resp.Current)
	if err != nil {
		return weather.Forecast{}, err
	}

	days := make([]weather.ForecastDay, 0, len(resp.Forecast.ForecastDay))
	for _, d := range resp.Forecast.ForecastDay {
		days = append(days, normalizeForecastDay(d))
	}

	return weather.Forecast{Current: current, Days: days}, nil
}

// NormalizeLocations converts a WeatherAPI search.json payload into location candidates.
func NormalizeLocations(raw []byte) ([]weather.LocationCandidate, error) {
	var results []apiSearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, weather.NewParseError("failed to parse location search response", err)
	}

	out := make([]weather.LocationCandidate, 0, len(results))
	for _, r := range results {
		out = append(out, weather.LocationCandidate{
			ID:      r.ID,
			Name:    r.Name,
			Region:  r.Region,
			Country: r.Country,
			Lat:     r.Lat,
			Lon:     r.Lon,
		})
	}
	return out, nil
}

func normalizeObservation(loc apiLocation, cur apiCurrent) (weather.Observation, error) {
	temp, ok := metric(cur.TempC, cur.TempF, weather.FahrenheitToCelsius)
	if !ok {
		return weather.Observation{}, weather.NewParseError("provider response has no temperature", nil)
	}
	feels, ok := metric(cur.FeelslikeC, cur.FeelslikeF, weather.FahrenheitToCelsius)
	if !ok {
		feels = temp
	}
	pressure, ok := metric(cur.PressureMb, cur.PressureIn, weather.InHgToMb)
	if !ok {
		return weather.Observation{}, weather.NewParseError("provider response has no pressure", nil)
	}
	wind, ok := metric(cur.WindKph, cur.WindMph, weather.MphToKph)
	if !ok {
		return weather.Observation{}, weather.NewParseError("provider response has no wind speed", nil)
	}
	vis, ok := metric(cur.VisKm, cur.VisMiles, weather.MilesToKm)
	if !ok {
		return weather.Observation{}, weather.NewParseError("provider response has no visibility", nil)
	}
	// An absent precipitation reading means none fell.
	precip, _ := metric(cur.PrecipMm, cur.PrecipIn, weather.InchesToMm)

	var ts time.Time
	switch {
	case cur.LastUpdatedEpoch > 0:
		ts = time.Unix(cur.LastUpdatedEpoch, 0).UTC()
	case loc.LocaltimeEpoch > 0:
		ts = time.Unix(loc.LocaltimeEpoch, 0).UTC()
	}

	obs := weather.Observation{
		Location: weather.Location{
			Name:      loc.Name,
			Region:    loc.Region,
			Country:   loc.Country,
			Lat:       loc.Lat,
			Lon:       loc.Lon,
			LocalTime: loc.Localtime,
		},
		Timestamp:     ts,
		Temperature:   temp,
		FeelsLike:     feels,
		Humidity:      float64(cur.Humidity),
		Pressure:      pressure,
		WindSpeed:     wind,
		WindDegree:    cur.WindDegree,
		WindDir:       cur.WindDir,
		Visibility:    vis,
		UVIndex:       float64(cur.UV),
		Precipitation: precip,
		Cloud:         float64(cur.Cloud),
		IsDay:         cur.IsDay == 1,
		Condition:     cur.Condition.Text,
		ConditionCode: cur.Condition.Code,
	}

	return obs.Derive(), nil
}

func normalizeForecastDay(d apiForecastDay) weather.ForecastDay {
	maxTemp, _ := metric(d.Day.MaxtempC, d.Day.MaxtempF, weather.FahrenheitToCelsius)
	minTemp, _ := metric(d.Day.MintempC, d.Day.MintempF, weather.FahrenheitToCelsius)
	wind, _ := metric(d.Day.MaxwindKph, d.Day.MaxwindMph, weather.MphToKph)
	precip, _ := metric(d.Day.TotalprecipMm, d.Day.TotalprecipIn, weather.InchesToMm)

	return weather.ForecastDay{
		Date:          d.Date,
		Condition:     d.Day.Condition.Text,
		ConditionCode: d.Day.Condition.Code,
		Icon:          weather.IconFor(d.Day.Condition.Code, d.Day.Condition.Text, true),
		MaxTemp:       maxTemp,
		MinTemp:       minTemp,
		Humidity:      float64(d.Day.Avghumidity),
		WindSpeed:     wind,
		Precipitation: precip,
		ChanceOfRain:  float64(d.Day.DailyChanceOfRain),
		UVIndex:       float64(d.Day.UV),
		Sunrise:       d.Astro.Sunrise,
		Sunset:        d.Astro.Sunset,
		MoonPhase:     d.Astro.MoonPhase,
	}
}
