// Package schufa simulates the SCHUFA credit bureau. It stands in for the
// real integration behind the same port, producing plausible scores with
// bounded latency. Production swaps this for the real client via wiring, not
// via inline environment branches.
package schufa

import (
	"context"
	"math/rand/v2"
	"time"

	"sichrplace/internal/screening/models"
	"sichrplace/internal/screening/providers"
)

// ProviderID identifies this provider in errors and audit summaries.
const ProviderID = "schufa-simulated"

// Simulated scores stay in a plausible bureau band.
const (
	scoreFloor = 650
	scoreSpan  = 251 // draws 650–900 inclusive
)

// Provider is the simulated bureau client.
type Provider struct {
	validity   time.Duration
	minLatency time.Duration
	maxLatency time.Duration
	clock      func() time.Time
	intN       func(n int) int
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures the simulated provider.
type Option func(*Provider)

// WithLatency bounds the simulated call duration.
func WithLatency(min, max time.Duration) Option {
	return func(p *Provider) {
		p.minLatency = min
		p.maxLatency = max
	}
}

// WithClock injects a clock for deterministic validity windows in tests.
func WithClock(clock func() time.Time) Option {
	return func(p *Provider) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithRand injects the score source for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(p *Provider) {
		if r != nil {
			p.intN = r.IntN
		}
	}
}

// New constructs a simulated bureau with the given result validity window.
func New(validity time.Duration, opts ...Option) *Provider {
	p := &Provider{
		validity:   validity,
		minLatency: 2 * time.Second,
		maxLatency: 5 * time.Second,
		clock:      time.Now,
		intN:       rand.IntN,
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check performs a simulated bureau lookup for the given identity. The
// context deadline bounds the call; expiry surfaces as a retryable provider
// timeout, never an indefinite hang.
func (p *Provider) Check(ctx context.Context, personal models.PersonalData) (*models.CreditCheckResult, error) {
	if err := p.sleep(ctx, p.latency()); err != nil {
		return nil, providers.New(providers.ErrorTimeout, ProviderID, "credit check timed out", err)
	}

	score := scoreFloor + p.intN(scoreSpan)
	now := p.clock()

	return &models.CreditCheckResult{
		IdentityKey:  personal.IdentityKey(),
		CreditScore:  score,
		RiskCategory: models.RiskCategoryFor(score),
		CheckedAt:    now,
		ValidUntil:   now.Add(p.validity),
		Factors:      factorBreakdown(score),
	}, nil
}

func (p *Provider) latency() time.Duration {
	if p.maxLatency <= p.minLatency {
		return p.minLatency
	}
	jitter := time.Duration(p.intN(int(p.maxLatency - p.minLatency)))
	return p.minLatency + jitter
}

// factorBreakdown mirrors the bureau's weighted factor report.
func factorBreakdown(score int) []models.CreditFactor {
	utilization := "neutral"
	if score > 700 {
		utilization = "positive"
	}
	return []models.CreditFactor{
		{Factor: "Payment History", Impact: "positive", Weight: 35},
		{Factor: "Credit Utilization", Impact: utilization, Weight: 30},
		{Factor: "Length of Credit History", Impact: "positive", Weight: 15},
		{Factor: "Types of Credit", Impact: "neutral", Weight: 10},
		{Factor: "Recent Credit Inquiries", Impact: "neutral", Weight: 10},
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
