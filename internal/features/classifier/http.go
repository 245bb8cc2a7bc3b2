package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// leveledZap adapts zap to retryablehttp. Intermediate failures are logged at
// warn since they are retried.
type leveledZap struct {
	inner *zap.SugaredLogger
}

func (l leveledZap) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warnw(msg, keysAndValues...)
}

func (l leveledZap) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warnw(msg, keysAndValues...)
}

func (l leveledZap) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Debugw(msg, keysAndValues...)
}

func (l leveledZap) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Debugw(msg, keysAndValues...)
}

type HTTPOption func(*HTTP)

// WithMaxRetries sets the retry budget per request.
func WithMaxRetries(n int) HTTPOption {
	return func(h *HTTP) { h.client.RetryMax = n }
}

// WithRetryWait bounds the backoff between retries.
func WithRetryWait(min, max time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.client.RetryWaitMin = min
		h.client.RetryWaitMax = max
	}
}

// WithLogger routes client and breaker logs through log.
func WithLogger(log *zap.Logger) HTTPOption {
	return func(h *HTTP) {
		h.log = log
		h.client.Logger = retryablehttp.LeveledLogger(leveledZap{inner: log.Sugar()})
	}
}

// WithBreaker replaces the circuit breaker settings.
func WithBreaker(consecutiveFailures uint32, openFor time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.tripAfter = consecutiveFailures
		h.openFor = openFor
	}
}

// HTTP calls an external classification endpoint. Requests are retried on
// connection errors and 5xx, and a circuit breaker stops calls after
// repeated failures so submissions fall back quickly.
type HTTP struct {
	url       string
	apiKey    string
	client    *retryablehttp.Client
	breaker   *gobreaker.CircuitBreaker
	log       *zap.Logger
	tripAfter uint32
	openFor   time.Duration
}

func NewHTTP(url, apiKey string, opts ...HTTPOption) *HTTP {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.CheckRetry = retryPolicy

	h := &HTTP{
		url:       url,
		apiKey:    apiKey,
		client:    client,
		log:       zap.NewNop(),
		tripAfter: 5,
		openFor:   30 * time.Second,
	}
	client.Logger = retryablehttp.LeveledLogger(leveledZap{inner: h.log.Sugar()})
	for _, opt := range opts {
		opt(h)
	}

	h.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "classifier-http",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     h.openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= h.tripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			h.log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return h
}

func (h *HTTP) Name() string { return DriverHTTP }

// State exposes the breaker state for health reporting.
func (h *HTTP) State() string { return h.breaker.State().String() }

func (h *HTTP) Classify(ctx context.Context, req Request) (Result, error) {
	out, err := h.breaker.Execute(func() (interface{}, error) {
		return h.call(ctx, req)
	})
	if err != nil {
		return Result{}, err
	}
	return Sanitize(out.(Result)), nil
}

func (h *HTTP) call(ctx context.Context, req Request) (Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if h.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var res Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode classifier response: %w", err)
	}
	return res, nil
}

// retryPolicy leaves 429 to the breaker instead of hammering the endpoint.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}
