package weather

import (
	"context"
	"testing"
	"time"
)

func TestRateLimitedProviderUnlimited(t *testing.T) {
	p := newFakeProvider()
	r := NewRateLimitedProvider(p, 0, 0)

	for i := 0; i < 20; i++ {
		if _, err := r.FetchCurrent(context.Background(), "Paris"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if n := p.count("current"); n != 20 {
		t.Fatalf("expected 20 calls, got %d", n)
	}
}

func TestRateLimitedProviderDeadlineIsTimeout(t *testing.T) {
	p := newFakeProvider()
	// One token, refilled every 100s.
	r := NewRateLimitedProvider(p, 0.01, 1)

	if _, err := r.FetchCurrent(context.Background(), "Paris"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.FetchForecast(ctx, "Paris", 3)
	if KindOf(err) != KindTimeout {
		t.Fatalf("expected %s, got %v", KindTimeout, err)
	}
	if n := p.count("forecast"); n != 0 {
		t.Fatalf("expected the limited call not to reach the provider, got %d", n)
	}
}

func TestRateLimitedProviderCanceled(t *testing.T) {
	p := newFakeProvider()
	r := NewRateLimitedProvider(p, 0.01, 1)
	_, _ = r.SearchLocations(context.Background(), "Paris")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.SearchLocations(ctx, "Paris")
	if KindOf(err) != KindNetwork {
		t.Fatalf("expected %s, got %v", KindNetwork, err)
	}
}

func TestRateLimitedProviderName(t *testing.T) {
	r := NewRateLimitedProvider(newFakeProvider(), 1, 1)
	if got := r.Name(); got != "fake [Rate Limited]" {
		t.Fatalf("unexpected name %q", got)
	}
}
