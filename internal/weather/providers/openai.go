package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-intelligence/internal/common"
	"github.com/i474232898/weather-intelligence/internal/insights"
	"github.com/i474232898/weather-intelligence/internal/weather"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-3.5-turbo"
	defaultOpenAITimeout = 20 * time.Second
)

const narrativeSystemPrompt = "You are a professional weather analysis assistant. " +
	"Always respond with valid JSON only, no additional text."

// OpenAIConfig holds the injected settings of the live narrator.
type OpenAIConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

// OpenAINarrator implements insights.Narrator against an OpenAI-compatible
// chat completions endpoint.
type OpenAINarrator struct {
	baseURL   string
	apiKey    string
	model     string
	timeout   time.Duration
	maxTokens int
	client    *http.Client
	circuit   *gobreaker.CircuitBreaker
}

// NewOpenAINarrator creates a narrator backed by an OpenAI-compatible chat completions API.
func NewOpenAINarrator(client *http.Client, cfg OpenAIConfig) *OpenAINarrator {
	n := &OpenAINarrator{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		timeout:   cfg.Timeout,
		maxTokens: cfg.MaxTokens,
		client:    client,
		circuit:   newCircuitBreaker("openai"),
	}
	if n.baseURL == "" {
		n.baseURL = defaultOpenAIBaseURL
	}
	if n.model == "" {
		n.model = defaultOpenAIModel
	}
	if n.timeout <= 0 {
		n.timeout = defaultOpenAITimeout
	}
	if n.maxTokens <= 0 {
		n.maxTokens = 500
	}
	return n
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	MaxTokens      int               `json:"max_tokens"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// narrativeReply is the JSON object the model is asked to return.
type narrativeReply struct {
	Analysis       string   `json:"analysis"`
	Prediction     string   `json:"prediction"`
	Confidence     *float64 `json:"confidence"`
	Recommendation string   `json:"recommendation"`
	Alert          *string  `json:"alert"`
	Reasoning      string   `json:"reasoning"`
}

// Narrate asks the model for a narrative. Any failure, including an unusable reply,
// is returned as a typed error for the caller's fallback to handle.
func (n *OpenAINarrator) Narrate(ctx context.Context, req insights.NarrativeRequest) (insights.Narrative, error) {
	if n.apiKey == "" {
		return insights.Narrative{}, weather.NewValidationError("openai api key is not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model: n.model,
		Messages: []chatMessage{
			{Role: "system", Content: narrativeSystemPrompt},
			{Role: "user", Content: narrativePrompt(req)},
		},
		MaxTokens:      n.maxTokens,
		Temperature:    0.7,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return insights.Narrative{}, fmt.Errorf("encode chat request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return insights.Narrative{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+n.apiKey)

	body, err := doRequest(ctx, n.client, n.circuit, httpReq)
	if err != nil {
		return insights.Narrative{}, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return insights.Narrative{}, weather.NewParseError("failed to parse chat completion", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return insights.Narrative{}, weather.NewParseError("chat completion has no content", nil)
	}

	var reply narrativeReply
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &reply); err != nil {
		return insights.Narrative{}, weather.NewParseError("chat completion is not a JSON object", err)
	}
	if reply.Analysis == "" {
		return insights.Narrative{}, weather.NewParseError("chat completion has no analysis", nil)
	}

	confidence := 0.0
	if reply.Confidence != nil {
		confidence = common.Unit(*reply.Confidence)
	}
	if reply.Alert != nil && strings.TrimSpace(*reply.Alert) == "" {
		reply.Alert = nil
	}

	return insights.Narrative{
		Analysis:       reply.Analysis,
		Prediction:     reply.Prediction,
		Confidence:     confidence,
		Recommendation: reply.Recommendation,
		Alert:          reply.Alert,
		Reasoning:      reply.Reasoning,
		Timestamp:      req.Now,
		User:           req.User,
		Model:          n.model,
		TokensUsed:     resp.Usage.TotalTokens,
		Source:         insights.NarrativeLive,
	}, nil
}

func narrativePrompt(req insights.NarrativeRequest) string {
	obs := req.Observation
	location := req.Location
	if location == "" {
		location = obs.Location.Name
	}

	var b strings.Builder
	b.WriteString("Analyze the following weather data and provide insights")
	if req.User != "" {
		fmt.Fprintf(&b, " for user %s", req.User)
	}
	b.WriteString(".\n\nCurrent Weather Data:\n")
	fmt.Fprintf(&b, "- Location: %s\n", location)
	fmt.Fprintf(&b, "- Temperature: %.1f°C\n", obs.Temperature)
	fmt.Fprintf(&b, "- Humidity: %.0f%%\n", obs.Humidity)
	fmt.Fprintf(&b, "- Pressure: %.0fmb\n", obs.Pressure)
	fmt.Fprintf(&b, "- Wind Speed: %.0fkm/h\n", obs.WindSpeed)
	fmt.Fprintf(&b, "- Visibility: %.0fkm\n", obs.Visibility)
	fmt.Fprintf(&b, "- UV Index: %.1f\n", obs.UVIndex)
	fmt.Fprintf(&b, "- Precipitation: %.1fmm\n", obs.Precipitation)
	fmt.Fprintf(&b, "- Time: %s\n\n", req.Now.UTC().Format(time.RFC3339))
	b.WriteString(`Respond as JSON with these exact keys:
{"analysis": "2-3 sentences", "prediction": "next 6 hours", "confidence": 0.0-1.0,
"recommendation": "outdoor activity advice", "alert": "warning or null", "reasoning": "short explanation"}`)
	return b.String()
}
