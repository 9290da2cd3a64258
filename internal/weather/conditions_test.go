package weather

import "testing"

func TestIconFor(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		text  string
		isDay bool
		want  Icon
	}{
		{"clear day", 1000, "Sunny", true, IconSunny},
		{"clear night", 1000, "Clear", false, IconClearNight},
		{"partly cloudy night", 1003, "Partly cloudy", false, IconPartlyCloudyNight},
		{"heavy rain by code", 1195, "Heavy rain", true, IconHeavyRain},
		{"thunder by code", 1087, "Thundery outbreaks possible", true, IconThunderstorm},
		{"code wins over text", 1066, "Patchy rain", true, IconSnow},
		{"unknown code rain keyword", 9999, "Freezing Rain Showers", true, IconRain},
		{"rain checked before cloud", 0, "Cloudy with rain", true, IconRain},
		{"cloud checked before snow", 0, "Snow clouds", true, IconCloudy},
		{"snow keyword", 0, "Blowing snow", false, IconSnow},
		{"thunder keyword", 0, "Thunder nearby", true, IconThunderstorm},
		{"fog keyword", 0, "Freezing fog", true, IconFog},
		{"clear keyword at night", 0, "Clear skies", false, IconClearNight},
		{"default day", 0, "Windy", true, IconSunny},
		{"default night", 0, "", false, IconClearNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IconFor(tt.code, tt.text, tt.isDay); got != tt.want {
				t.Fatalf("expected icon %q, got %q", tt.want, got)
			}
		})
	}
}
