package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/wellswap/valuation-engine/internal/model"
	"github.com/wellswap/valuation-engine/internal/resilience"
)

// HTTPOptions configures the HTTP market-data provider.
type HTTPOptions struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
	RateBurst  int
	Retry      resilience.RetryConfig
	Breaker    resilience.CircuitBreakerConfig
	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// HTTPProvider implements Provider against the market-data service, with
// rate limiting, retry on transient failures, and a circuit breaker so a
// dead service does not eat the call budget of every valuation.
type HTTPProvider struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
	retry   resilience.RetryConfig
}

// NewHTTPProvider creates an HTTPProvider with the given options.
func NewHTTPProvider(opts HTTPOptions) *HTTPProvider {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 5
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 5
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = resilience.DefaultRetryConfig()
		opts.Retry.OnRetry = resilience.RetryLogger("marketdata", "fetch")
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPProvider{
		client:  client,
		baseURL: opts.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.RateBurst),
		breaker: resilience.NewCircuitBreaker(opts.Breaker),
		retry:   opts.Retry,
	}
}

type snapshotRequest struct {
	Company     string `json:"company"`
	ProductType string `json:"product_type"`
	Location    string `json:"location"`
}

// Fetch requests a snapshot for the given company/product/location.
func (p *HTTPProvider) Fetch(ctx context.Context, company, productType, location string) (model.MarketSnapshot, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return model.MarketSnapshot{}, eris.Wrap(err, "marketdata: rate limit wait")
	}

	return resilience.DoVal(ctx, p.retry, func(ctx context.Context) (model.MarketSnapshot, error) {
		return resilience.ExecuteVal(ctx, p.breaker, func(ctx context.Context) (model.MarketSnapshot, error) {
			return p.fetchOnce(ctx, company, productType, location)
		})
	})
}

func (p *HTTPProvider) fetchOnce(ctx context.Context, company, productType, location string) (model.MarketSnapshot, error) {
	body, err := json.Marshal(snapshotRequest{
		Company:     company,
		ProductType: productType,
		Location:    location,
	})
	if err != nil {
		return model.MarketSnapshot{}, eris.Wrap(err, "marketdata: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/market-data", bytes.NewReader(body))
	if err != nil {
		return model.MarketSnapshot{}, eris.Wrap(err, "marketdata: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return model.MarketSnapshot{}, eris.Wrap(err, "marketdata: execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("marketdata: unexpected status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return model.MarketSnapshot{}, resilience.NewTransientError(err, resp.StatusCode)
		}
		return model.MarketSnapshot{}, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.MarketSnapshot{}, eris.Wrap(err, "marketdata: read response")
	}

	var snap model.MarketSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.MarketSnapshot{}, eris.Wrap(err, "marketdata: decode snapshot")
	}
	if err := validateSnapshot(snap); err != nil {
		return model.MarketSnapshot{}, err
	}

	return snap, nil
}

// validateSnapshot rejects snapshots with non-finite fields. A provider that
// returns NaN must look unavailable, not poison the pipeline.
func validateSnapshot(s model.MarketSnapshot) error {
	fields := map[string]float64{
		"interest_rate":  s.InterestRate,
		"inflation_rate": s.InflationRate,
		"currency_rate":  s.CurrencyRate,
		"volatility":     s.Volatility,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return eris.New(fmt.Sprintf("marketdata: non-finite %s in snapshot", name))
		}
	}
	return nil
}
