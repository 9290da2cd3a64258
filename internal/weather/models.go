package weather

import (
	"time"
)

// Icon is a normalized icon category derived from a provider condition.
type Icon string

const (
	IconSunny             Icon = "sunny"
	IconClearNight        Icon = "clear-night"
	IconPartlyCloudy      Icon = "partly-cloudy"
	IconPartlyCloudyNight Icon = "partly-cloudy-night"
	IconCloudy            Icon = "cloudy"
	IconFog               Icon = "fog"
	IconDrizzle           Icon = "drizzle"
	IconRain              Icon = "rain"
	IconHeavyRain         Icon = "heavy-rain"
	IconSleet             Icon = "sleet"
	IconSnow              Icon = "snow"
	IconThunderstorm      Icon = "thunderstorm"
)

// Location identifies the place an observation belongs to, as resolved by the provider.
type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	LocalTime string  `json:"localTime,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.Name + ":" + l.Country
}

// Observation is one normalized snapshot of current weather for a location.
// Units are always Celsius, km/h, mb, km and mm.
type Observation struct {
	Location  Location  `json:"location"`
	Timestamp time.Time `json:"timestamp"` // always UTC

	Temperature   float64 `json:"temperature" validate:"gte=-100,lte=70"`
	FeelsLike     float64 `json:"feelsLike"`
	Humidity      float64 `json:"humidity" validate:"gte=0,lte=100"`
	Pressure      float64 `json:"pressure" validate:"gte=800,lte=1100"`
	WindSpeed     float64 `json:"windSpeed" validate:"gte=0"`
	WindDegree    int     `json:"windDegree"`
	WindDir       string  `json:"windDir,omitempty"`
	Visibility    float64 `json:"visibility" validate:"gte=0"`
	UVIndex       float64 `json:"uvIndex" validate:"gte=0"`
	Precipitation float64 `json:"precipitation" validate:"gte=0"`
	Cloud         float64 `json:"cloud" validate:"gte=0,lte=100"`
	IsDay         bool    `json:"isDay"`

	Condition     string `json:"condition"`
	ConditionCode int    `json:"conditionCode"`

	// Derived fields the provider does not supply directly.
	DewPoint   float64    `json:"dewPoint"`
	Icon       Icon       `json:"icon"`
	UVCategory UVCategory `json:"uvCategory"`
	Comfort    Comfort    `json:"comfort"`
}

// ForecastDay is one day of a multi-day forecast.
type ForecastDay struct {
	Date          string  `json:"date"`
	Condition     string  `json:"condition"`
	ConditionCode int     `json:"conditionCode"`
	Icon          Icon    `json:"icon"`
	MaxTemp       float64 `json:"maxTemp"`
	MinTemp       float64 `json:"minTemp"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	Precipitation float64 `json:"precipitation"`
	ChanceOfRain  float64 `json:"chanceOfRain"`
	UVIndex       float64 `json:"uvIndex"`
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`
	MoonPhase     string  `json:"moonPhase"`
}

// Forecast pairs the current observation with the ordered daily forecast.
type Forecast struct {
	Current Observation   `json:"current"`
	Days    []ForecastDay `json:"forecast"`
}

// LocationCandidate is one result of a location search.
type LocationCandidate struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Snapshot is an observation persisted for a tracked location.
type Snapshot struct {
	LocationKey string      `json:"locationKey"`
	Observation Observation `json:"observation"`
	StoredAt    time.Time   `json:"storedAt"`
}
