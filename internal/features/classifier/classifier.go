package classifier

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Status is the verdict suggested by a classifier.
type Status string

const (
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusNeedsReview Status = "needs_review"
	StatusFlagged     Status = "flagged"
	StatusPending     Status = "pending"
)

// UnavailableMarker prefixes the rationale of a fallback result.
const UnavailableMarker = "classifier_unavailable"

// Drivers accepted by New.
const (
	DriverKeyword = "keyword"
	DriverHTTP    = "http"
	DriverGemini  = "gemini"
)

// Request is the content handed to a classifier.
type Request struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	RegionID    string `json:"region_id,omitempty"`
}

// Result is a classifier verdict.
type Result struct {
	Status      Status   `json:"status"`
	Confidence  float64  `json:"confidence"`
	Flags       []string `json:"flags"`
	Rationale   string   `json:"rationale"`
	Unavailable bool     `json:"-"`
}

// Classifier scores content. Implementations must honor ctx cancellation.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Result, error)
	Name() string
}

// Sanitize clamps confidence into [0,1], lowercases and dedupes flags and
// maps unknown statuses to needs_review.
func Sanitize(r Result) Result {
	switch {
	case math.IsNaN(r.Confidence), r.Confidence < 0:
		r.Confidence = 0
	case r.Confidence > 1:
		r.Confidence = 1
	}

	switch Status(strings.ToLower(string(r.Status))) {
	case StatusApproved, StatusRejected, StatusNeedsReview, StatusFlagged, StatusPending:
		r.Status = Status(strings.ToLower(string(r.Status)))
	default:
		r.Status = StatusNeedsReview
	}

	seen := make(map[string]bool, len(r.Flags))
	flags := make([]string, 0, len(r.Flags))
	for _, f := range r.Flags {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		flags = append(flags, f)
	}
	r.Flags = flags
	r.Rationale = strings.TrimSpace(r.Rationale)
	return r
}

// Unavailable is the result recorded when classification fails or times out.
func Unavailable(err error) Result {
	return Result{
		Status:      StatusNeedsReview,
		Confidence:  0,
		Flags:       []string{},
		Rationale:   fmt.Sprintf("%s: %v", UnavailableMarker, err),
		Unavailable: true,
	}
}

// Config selects and configures a classifier driver.
type Config struct {
	Driver      string
	URL         string
	APIKey      string
	GeminiKey   string
	GeminiModel string
}

// New builds the classifier named by cfg.Driver.
func New(ctx context.Context, cfg Config, opts ...HTTPOption) (Classifier, error) {
	switch cfg.Driver {
	case "", DriverKeyword:
		return NewKeyword(), nil
	case DriverHTTP:
		if cfg.URL == "" {
			return nil, fmt.Errorf("classifier: CLASSIFIER_URL is required for the http driver")
		}
		return NewHTTP(cfg.URL, cfg.APIKey, opts...), nil
	case DriverGemini:
		return NewGemini(ctx, cfg.GeminiKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("classifier: unknown driver %q", cfg.Driver)
	}
}
