// Package exchange fetches live currency rates from an ExchangeRate-API style
// endpoint: GET {base_url}/v6/{key}/latest/{base}.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/infrastructure/remote"
)

const (
	capability     = "exchange_rate"
	DefaultBaseURL = "https://v6.exchangerate-api.com"
)

var errNotConfigured = errors.New("exchange rate api key not configured")

type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// Client implements ports.RateProvider.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
}

func New(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{},
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		cb:      remote.NewBreaker("exchange-rate", log),
	}
}

func (c *Client) Rate(ctx context.Context, base, quote string) (float64, error) {
	if c.apiKey == "" {
		return 0, fmt.Errorf("%s: %w: %w", capability, domain.ErrRemoteUnavailable, errNotConfigured)
	}
	return remote.Call(ctx, c.cb, capability, c.timeout, func(ctx context.Context) (float64, error) {
		return c.fetch(ctx, base, quote)
	})
}

func (c *Client) fetch(ctx context.Context, base, quote string) (float64, error) {
	endpoint, err := url.JoinPath(c.baseURL, "v6", c.apiKey, "latest", base)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode rates: %w", err)
	}
	if body.Result != "success" {
		return 0, fmt.Errorf("rates lookup failed: %s", body.ErrorType)
	}
	rate, ok := body.ConversionRates[quote]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("no %s rate for %s", quote, base)
	}
	return rate, nil
}
