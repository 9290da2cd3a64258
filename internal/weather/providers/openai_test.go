package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-intelligence/internal/insights"
	"github.com/i474232898/weather-intelligence/internal/weather"
)

func chatCompletion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"total_tokens": 321},
	})
	return string(b)
}

func narrativeRequest() insights.NarrativeRequest {
	return insights.NarrativeRequest{
		Observation: weather.Observation{
			Location:    weather.Location{Name: "London"},
			Temperature: 15,
			Humidity:    65,
			Pressure:    995,
			WindSpeed:   12,
			Visibility:  10,
		},
		User: "alice",
		Now:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOpenAINarratorLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-test" || len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "London") {
			t.Errorf("unexpected chat request %+v", req)
		}
		_, _ = io.WriteString(w, chatCompletion(`{"analysis":"Falling pressure.","prediction":"Showers later.",
			"confidence":1.4,"recommendation":"Carry an umbrella.","alert":"  ","reasoning":"Pressure below 1000mb."}`))
	}))
	defer srv.Close()

	n := NewOpenAINarrator(srv.Client(), OpenAIConfig{BaseURL: srv.URL, APIKey: "sk-test", Model: "gpt-test"})
	got, err := n.Narrate(context.Background(), narrativeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Source != insights.NarrativeLive || got.Model != "gpt-test" {
		t.Fatalf("expected live narrative from gpt-test, got %s/%s", got.Source, got.Model)
	}
	if got.Analysis != "Falling pressure." || got.TokensUsed != 321 || got.User != "alice" {
		t.Fatalf("unexpected narrative %+v", got)
	}
	if got.Confidence != 1 {
		t.Fatalf("expected confidence clamped to 1, got %v", got.Confidence)
	}
	if got.Alert != nil {
		t.Fatalf("expected blank alert to be dropped, got %q", *got.Alert)
	}
}

func TestOpenAINarratorErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   weather.ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","code":"invalid_api_key"}}`, weather.KindProvider},
		{"not json content", http.StatusOK, chatCompletion("Sure! Here is the analysis."), weather.KindParse},
		{"no choices", http.StatusOK, `{"choices":[]}`, weather.KindParse},
		{"no analysis", http.StatusOK, chatCompletion(`{"prediction":"dry"}`), weather.KindParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			n := NewOpenAINarrator(srv.Client(), OpenAIConfig{BaseURL: srv.URL, APIKey: "sk-test"})
			_, err := n.Narrate(context.Background(), narrativeRequest())
			if weather.KindOf(err) != tt.want {
				t.Fatalf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenAINarratorMissingKey(t *testing.T) {
	n := NewOpenAINarrator(http.DefaultClient, OpenAIConfig{})
	if _, err := n.Narrate(context.Background(), narrativeRequest()); weather.KindOf(err) != weather.KindValidation {
		t.Fatalf("expected %s, got %v", weather.KindValidation, err)
	}
}

func TestFallbackNarratorTagsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	narrator := insights.FallbackNarrator{
		Primary: NewOpenAINarrator(srv.Client(), OpenAIConfig{BaseURL: srv.URL, APIKey: "sk-test"}),
		Logger:  quietLogger(),
	}

	got, err := narrator.Narrate(context.Background(), narrativeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != insights.NarrativeFallback || got.Model != insights.FallbackModel {
		t.Fatalf("expected fallback narrative, got %s/%s", got.Source, got.Model)
	}
	if got.Alert == nil {
		t.Fatalf("expected a low pressure alert in the fallback narrative")
	}
}
