package insights

import "github.com/i474232898/weather-intelligence/internal/weather"

// Category groups recommendations.
type Category string

const (
	CategoryActivity  Category = "activity"
	CategoryClothing  Category = "clothing"
	CategoryTravel    Category = "travel"
	CategorySafety    Category = "safety"
	CategoryLifestyle Category = "lifestyle"
)

// Recommendation is a suggestion gated by threshold conditions.
type Recommendation struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Suitability float64  `json:"suitability"`
	Timing      string   `json:"timing"`
	Precautions []string `json:"precautions,omitempty"`
	Reasoning   string   `json:"reasoning"`
}

type candidate struct {
	rec     Recommendation
	outdoor bool
	gate    func(weather.Observation) bool
}

// indoorGate fires when conditions rule out outdoor activities altogether.
func indoorGate(o weather.Observation) bool {
	return o.Precipitation > 50 || o.WindSpeed > 30
}

var candidates = []candidate{
	{
		rec: Recommendation{
			Category:    CategoryActivity,
			Title:       "Outdoor Photography",
			Description: "Clear air and dry conditions for outdoor photography",
			Suitability: 0.91,
			Timing:      "Best during golden hour",
			Precautions: []string{"Protect equipment from wind", "Consider UV filter"},
			Reasoning:   "Excellent visibility and low precipitation create ideal conditions",
		},
		outdoor: true,
		gate: func(o weather.Observation) bool {
			return o.Visibility >= 8 && o.Precipitation < 5
		},
	},
	{
		rec: Recommendation{
			Category:    CategoryActivity,
			Title:       "Walking/Jogging",
			Description: "Comfortable conditions for a walk or a run",
			Suitability: 0.88,
			Timing:      "Anytime, avoid peak UV hours (11:00-15:00 local)",
			Precautions: []string{"Stay hydrated", "Wear appropriate clothing"},
			Reasoning:   "Comfortable temperature and moderate wind conditions",
		},
		outdoor: true,
		gate: func(o weather.Observation) bool {
			return o.Temperature >= 10 && o.Temperature <= 25 && o.WindSpeed < 20
		},
	},
	{
		rec: Recommendation{
			Category:    CategoryLifestyle,
			Title:       "Indoor Activities",
			Description: "A good day to stay in",
			Suitability: 0.95,
			Timing:      "Throughout the day",
			Precautions: []string{"Good time for planning", "Consider reading or creative work"},
			Reasoning:   "Weather conditions favor indoor pursuits",
		},
		gate: indoorGate,
	},
	{
		rec: Recommendation{
			Category:    CategoryClothing,
			Title:       "Warm Layers",
			Description: "Dress in layers to stay warm",
			Suitability: 0.86,
			Timing:      "When heading outside",
			Precautions: []string{"Cover extremities", "Bring a windproof outer layer"},
			Reasoning:   "Air temperature is below 10°C",
		},
		gate: func(o weather.Observation) bool { return o.Temperature < 10 },
	},
	{
		rec: Recommendation{
			Category:    CategoryClothing,
			Title:       "Sun Protection",
			Description: "Wear sunscreen, sunglasses and a hat",
			Suitability: 0.90,
			Timing:      "Especially 11:00-15:00 local",
			Precautions: []string{"Reapply sunscreen every two hours", "Seek shade at midday"},
			Reasoning:   "UV index is high",
		},
		gate: func(o weather.Observation) bool { return o.UVIndex >= 6 },
	},
	{
		rec: Recommendation{
			Category:    CategoryTravel,
			Title:       "Allow Extra Travel Time",
			Description: "Expect slower journeys on the roads",
			Suitability: 0.83,
			Timing:      "For any trip today",
			Precautions: []string{"Use headlights", "Increase following distance"},
			Reasoning:   "Reduced visibility or significant precipitation",
		},
		gate: func(o weather.Observation) bool {
			return o.Visibility < 2 || o.Precipitation > 10
		},
	},
	{
		rec: Recommendation{
			Category:    CategorySafety,
			Title:       "Secure Loose Objects",
			Description: "Tie down or bring in garden furniture and bins",
			Suitability: 0.90,
			Timing:      "Before winds peak",
			Precautions: []string{"Avoid parking under trees", "Stay clear of scaffolding"},
			Reasoning:   "Wind speed above 50 km/h",
		},
		gate: func(o weather.Observation) bool { return o.WindSpeed > 50 },
	},
}

// GenerateRecommendations scores the candidates whose gate holds; the others are
// omitted. When the indoor gate holds, outdoor candidates are omitted too.
func GenerateRecommendations(obs weather.Observation) []Recommendation {
	indoor := indoorGate(obs)

	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if c.outdoor && indoor {
			continue
		}
		if !c.gate(obs) {
			continue
		}
		rec := c.rec
		rec.Precautions = append([]string(nil), c.rec.Precautions...)
		recs = append(recs, rec)
	}
	return recs
}
