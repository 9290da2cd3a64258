package weather

import (
	"strings"

	"github.com/i474232898/weather-intelligence/internal/common"
)

type iconPair struct {
	day   Icon
	night Icon
}

func same(i Icon) iconPair { return iconPair{day: i, night: i} }

// conditionIcons maps WeatherAPI condition codes onto icon categories.
var conditionIcons = map[int]iconPair{
	1000: {day: IconSunny, night: IconClearNight},
	1003: {day: IconPartlyCloudy, night: IconPartlyCloudyNight},
	1006: same(IconCloudy),
	1009: same(IconCloudy),
	1030: same(IconFog),
	1063: same(IconDrizzle),
	1066: same(IconSnow),
	1069: same(IconSleet),
	1072: same(IconDrizzle),
	1087: same(IconThunderstorm),
	1114: same(IconSnow),
	1117: same(IconSnow),
	1135: same(IconFog),
	1147: same(IconFog),
	1150: same(IconDrizzle),
	1153: same(IconDrizzle),
	1168: same(IconDrizzle),
	1171: same(IconDrizzle),
	1180: same(IconRain),
	1183: same(IconRain),
	1186: same(IconRain),
	1189: same(IconRain),
	1192: same(IconHeavyRain),
	1195: same(IconHeavyRain),
	1198: same(IconRain),
	1201: same(IconHeavyRain),
	1204: same(IconSleet),
	1207: same(IconSleet),
	1210: same(IconSnow),
	1213: same(IconSnow),
	1216: same(IconSnow),
	1219: same(IconSnow),
	1222: same(IconSnow),
	1225: same(IconSnow),
	1237: same(IconSleet),
	1240: same(IconRain),
	1243: same(IconRain),
	1246: same(IconHeavyRain),
	1249: same(IconSleet),
	1252: same(IconSleet),
	1255: same(IconSnow),
	1258: same(IconSnow),
	1261: same(IconSleet),
	1264: same(IconSleet),
	1273: same(IconThunderstorm),
	1276: same(IconThunderstorm),
	1279: same(IconThunderstorm),
	1282: same(IconThunderstorm),
}

type keywordIcon struct {
	keywords []string
	icon     iconPair
}

// conditionKeywords is consulted in order when the code is unknown; first match wins.
var conditionKeywords = []keywordIcon{
	{keywords: []string{"rain"}, icon: same(IconRain)},
	{keywords: []string{"cloud"}, icon: same(IconCloudy)},
	{keywords: []string{"snow"}, icon: same(IconSnow)},
	{keywords: []string{"thunder"}, icon: same(IconThunderstorm)},
	{keywords: []string{"fog"}, icon: same(IconFog)},
	{keywords: []string{"sunny", "clear"}, icon: iconPair{day: IconSunny, night: IconClearNight}},
}

// IconFor resolves the icon category for a provider condition code, falling back
// to keyword matching on the condition label.
func IconFor(code int, text string, isDay bool) Icon {
	pick := func(p iconPair) Icon {
		if isDay {
			return p.day
		}
		return p.night
	}

	if p, ok := conditionIcons[code]; ok {
		return pick(p)
	}

	label := strings.ToLower(text)
	for _, k := range conditionKeywords {
		if common.HasAny(label, k.keywords...) {
			return pick(k.icon)
		}
	}

	return pick(iconPair{day: IconSunny, night: IconClearNight})
}
