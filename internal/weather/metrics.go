package weather

import "math"

// Magnus-Tetens coefficients.
const (
	magnusA = 17.27
	magnusB = 237.7
)

// DewPoint approximates the dew point in °C from temperature (°C) and relative
// humidity (%) with the Magnus-Tetens formula. The result never exceeds t.
func DewPoint(t, humidity float64) float64 {
	if humidity <= 0 {
		// Limit of the formula as ln(H/100) goes to -Inf.
		return math.Min(-magnusB, t)
	}
	if humidity > 100 {
		humidity = 100
	}
	alpha := (magnusA*t)/(magnusB+t) + math.Log(humidity/100)
	dp := (magnusB * alpha) / (magnusA - alpha)
	return math.Min(dp, t)
}

// UVCategory is the WHO exposure category for a UV index.
type UVCategory string

const (
	UVLow      UVCategory = "low"
	UVModerate UVCategory = "moderate"
	UVHigh     UVCategory = "high"
	UVVeryHigh UVCategory = "very_high"
	UVExtreme  UVCategory = "extreme"
)

// CategorizeUV maps a UV index onto its exposure category.
func CategorizeUV(uv float64) UVCategory {
	switch {
	case uv <= 2:
		return UVLow
	case uv <= 5:
		return UVModerate
	case uv <= 7:
		return UVHigh
	case uv <= 10:
		return UVVeryHigh
	default:
		return UVExtreme
	}
}

// Comfort classifies how humid the air feels, based on the dew point.
type Comfort string

const (
	ComfortDry           Comfort = "dry"
	ComfortComfortable   Comfort = "comfortable"
	ComfortUncomfortable Comfort = "uncomfortable"
)

// ClassifyComfort maps a dew point (°C) onto a comfort class.
func ClassifyComfort(dewPoint float64) Comfort {
	switch {
	case dewPoint > 20:
		return ComfortUncomfortable
	case dewPoint > 15:
		return ComfortComfortable
	default:
		return ComfortDry
	}
}

// Derive fills the derived fields of o from its measured ones.
func (o Observation) Derive() Observation {
	o.DewPoint = DewPoint(o.Temperature, o.Humidity)
	o.UVCategory = CategorizeUV(o.UVIndex)
	o.Comfort = ClassifyComfort(o.DewPoint)
	o.Icon = IconFor(o.ConditionCode, o.Condition, o.IsDay)
	return o
}

// Unit conversions used when a provider omits the metric field.

func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

func MphToKph(mph float64) float64 { return mph * 1.609344 }

func InHgToMb(in float64) float64 { return in * 33.8639 }

func MilesToKm(mi float64) float64 { return mi * 1.609344 }

func InchesToMm(in float64) float64 { return in * 25.4 }
