package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

var errNoHTTPClient = errors.New("http client not configured")

// newCircuitBreaker builds the breaker guarding one upstream. Provider 4xx answers
// (bad query, unknown location) are the caller's problem and do not trip it.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			e, ok := weather.AsError(err)
			return ok && e.Kind == weather.KindProvider &&
				e.HTTPStatus < http.StatusInternalServerError &&
				e.HTTPStatus != http.StatusTooManyRequests
		},
	})
}

// doRequest executes the request once through the circuit breaker and returns the
// response body of a 2xx answer. Failures come back as *weather.Error; nothing is retried.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
) ([]byte, error) {
	if client == nil {
		return nil, weather.NewNetworkError("provider unavailable", errNoHTTPClient)
	}

	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, classifyTransportError(ctx, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, classifyTransportError(ctx, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			code, msg := parseProviderError(body)
			return nil, weather.NewProviderError(resp.StatusCode, code, msg)
		}

		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, weather.NewNetworkError("provider circuit open", err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	// url.Error embeds the request URL, which carries the API key.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return weather.NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return weather.NewTimeoutError(err)
	}
	if errors.Is(err, context.Canceled) {
		return weather.NewNetworkError("request canceled", err)
	}
	return weather.NewNetworkError("failed to reach weather provider, please check your connection", err)
}

// parseProviderError extracts {"error": {"code": ..., "message": ...}} from an error body.
// The code may be numeric or a string; non-numeric codes are dropped.
func parseProviderError(body []byte) (int, string) {
	var payload struct {
		Error struct {
			Code    json.RawMessage `json:"code"`
			Message string          `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, ""
	}

	var code int
	if raw := payload.Error.Code; len(raw) > 0 {
		if n, err := strconv.Atoi(string(raw)); err == nil {
			code = n
		}
	}
	return code, payload.Error.Message
}
