package providers

const currentJSON = `{
  "location": {
    "name": "London", "region": "City of London, Greater London", "country": "United Kingdom",
    "lat": 51.52, "lon": -0.11, "tz_id": "Europe/London",
    "localtime_epoch": 1714566600, "localtime": "2024-05-01 13:30"
  },
  "current": {
    "last_updated_epoch": 1714566300,
    "temp_c": 15.0, "temp_f": 59.0, "is_day": 1,
    "condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png", "code": 1003},
    "wind_kph": 19.1, "wind_mph": 11.9, "wind_degree": 230, "wind_dir": "SW",
    "pressure_mb": 995.0, "pressure_in": 29.38,
    "precip_mm": 0.0, "precip_in": 0.0,
    "humidity": 65, "cloud": 50,
    "feelslike_c": 13.8, "feelslike_f": 56.8,
    "vis_km": 10.0, "vis_miles": 6.0,
    "uv": 4.0
  }
}`

const forecastJSON = `{
  "location": {"name": "London", "region": "", "country": "United Kingdom", "lat": 51.52, "lon": -0.11, "localtime_epoch": 1714566600, "localtime": "2024-05-01 13:30"},
  "current": {"last_updated_epoch": 1714566300, "temp_c": 15.0, "is_day": 1, "condition": {"text": "Sunny", "code": 1000},
    "wind_kph": 10, "pressure_mb": 1018, "precip_mm": 0, "humidity": 50, "cloud": 0, "vis_km": 10, "uv": 5},
  "forecast": {"forecastday": [
    {"date": "2024-05-01", "day": {"maxtemp_c": 17.2, "mintemp_c": 9.1, "maxwind_kph": 20.2, "totalprecip_mm": 0.5,
      "avghumidity": 70, "daily_chance_of_rain": 40, "condition": {"text": "Patchy rain nearby", "code": 1063}, "uv": 4},
      "astro": {"sunrise": "05:33 AM", "sunset": "08:26 PM", "moon_phase": "Waning Crescent"}},
    {"date": "2024-05-02", "day": {"maxtemp_c": 19.0, "mintemp_c": 10.0, "maxwind_kph": 15.0, "totalprecip_mm": 0,
      "avghumidity": 60, "daily_chance_of_rain": "0", "condition": {"text": "Sunny", "code": 1000}, "uv": 5},
      "astro": {"sunrise": "05:31 AM", "sunset": "08:28 PM", "moon_phase": "Waning Crescent"}},
    {"date": "2024-05-03", "day": {"maxtemp_c": 14.0, "mintemp_c": 8.0, "maxwind_kph": 30.0, "totalprecip_mm": 8.4,
      "avghumidity": 88, "daily_chance_of_rain": 89, "condition": {"text": "Moderate rain", "code": 1189}, "uv": 2},
      "astro": {"sunrise": "05:29 AM", "sunset": "08:30 PM", "moon_phase": "New Moon"}}
  ]}
}`

const searchJSON = `[
  {"id": 2801268, "name": "London", "region": "City of London, Greater London", "country": "United Kingdom", "lat": 51.52, "lon": -0.11, "url": "london-city-of-london-greater-london-united-kingdom"},
  {"id": 315398, "name": "London", "region": "Ontario", "country": "Canada", "lat": 42.98, "lon": -81.25, "url": "london-ontario-canada"}
]`

// imperialJSON omits every metric sibling and sends humidity and uv as strings.
const imperialJSON = `{
  "location": {"name": "Boston", "region": "Massachusetts", "country": "USA", "lat": 42.36, "lon": -71.06, "localtime_epoch": 1714566600},
  "current": {"temp_f": 50.0, "is_day": 0, "condition": {"text": "Clear", "code": 1000},
    "wind_mph": 10.0, "pressure_in": 29.92, "precip_in": 0.1, "humidity": "80", "cloud": "10",
    "vis_miles": 5.0, "uv": "1"}
}`
