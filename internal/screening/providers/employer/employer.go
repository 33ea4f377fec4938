// Package employer simulates the employer confirmation call. A real
// implementation would phone or email the employer's HR contact; the
// simulation keeps the realistic property that confirmation occasionally
// fails.
package employer

import (
	"context"
	"math/rand/v2"
	"time"

	"sichrplace/internal/screening/models"
	"sichrplace/internal/screening/providers"
)

// ProviderID identifies this provider in errors and audit summaries.
const ProviderID = "employer-simulated"

// unconfirmedRate is the share of calls where the employer cannot be reached
// or declines to confirm.
const unconfirmedRate = 0.1

// Verifier is the simulated employer confirmation client.
type Verifier struct {
	minLatency time.Duration
	maxLatency time.Duration
	float64N   func() float64
	intN       func(n int) int
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures the simulated verifier.
type Option func(*Verifier)

// WithLatency bounds the simulated call duration.
func WithLatency(min, max time.Duration) Option {
	return func(v *Verifier) {
		v.minLatency = min
		v.maxLatency = max
	}
}

// WithRand injects the randomness source for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(v *Verifier) {
		if r != nil {
			v.float64N = r.Float64
			v.intN = r.IntN
		}
	}
}

// New constructs a simulated employer verifier.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		minLatency: 3 * time.Second,
		maxLatency: 8 * time.Second,
		float64N:   rand.Float64,
		intN:       rand.IntN,
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify simulates contacting the employer and checking submitted documents.
// Document verification is deterministic on documentation completeness;
// employer confirmation carries a small failure rate.
func (v *Verifier) Verify(ctx context.Context, data models.EmploymentData) (models.EmployerConfirmation, error) {
	if err := v.sleep(ctx, v.latency()); err != nil {
		return models.EmployerConfirmation{}, providers.New(providers.ErrorTimeout, ProviderID, "employer confirmation timed out", err)
	}

	return models.EmployerConfirmation{
		EmployerConfirmed: v.float64N() >= unconfirmedRate,
		DocumentVerified:  data.HasCompleteDocuments(),
	}, nil
}

func (v *Verifier) latency() time.Duration {
	if v.maxLatency <= v.minLatency {
		return v.minLatency
	}
	jitter := time.Duration(v.intN(int(v.maxLatency - v.minLatency)))
	return v.minLatency + jitter
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
