package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"sichrplace/internal/screening/models"
	"sichrplace/pkg/platform/sentinel"
)

// checkResults joins the outputs of both provider calls.
type checkResults struct {
	credit          *models.CreditCheckResult
	creditFromCache bool
	confirmation    models.EmployerConfirmation

	creditLatency   time.Duration
	employerLatency time.Duration
}

// runChecks runs the credit check and the employer verification in parallel
// under a shared timeout. The first failure cancels the sibling call.
func (s *Service) runChecks(ctx context.Context, personal models.PersonalData, employment models.EmploymentData) (*checkResults, error) {
	ctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	results := &checkResults{}

	g.Go(func() error {
		ctx, span := s.tracer.Start(ctx, "screening.credit_check")
		defer span.End()

		start := time.Now()
		credit, fromCache, err := s.creditFor(ctx, personal)
		results.creditLatency = time.Since(start)
		s.metrics.ObserveProviderLatency("credit", results.creditLatency)

		if err != nil {
			return err
		}
		results.credit = credit
		results.creditFromCache = fromCache
		return nil
	})

	g.Go(func() error {
		ctx, span := s.tracer.Start(ctx, "screening.employer_verification")
		defer span.End()

		start := time.Now()
		confirmation, err := s.employer.Verify(ctx, employment)
		results.employerLatency = time.Since(start)
		s.metrics.ObserveProviderLatency("employer", results.employerLatency)

		if err != nil {
			return err
		}
		results.confirmation = confirmation
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// creditFor returns a cached bureau result when one is still valid, otherwise
// runs a fresh check and caches it. Cache failures degrade to a fresh check.
func (s *Service) creditFor(ctx context.Context, personal models.PersonalData) (*models.CreditCheckResult, bool, error) {
	identityKey := personal.IdentityKey()

	if s.creditCache != nil {
		cached, err := s.creditCache.Get(ctx, identityKey)
		switch {
		case err == nil:
			s.metrics.IncrementCreditCacheLookup("hit")
			s.logger.DebugContext(ctx, "credit result served from cache",
				"valid_until", cached.ValidUntil,
			)
			return cached, true, nil
		case errors.Is(err, sentinel.ErrExpired):
			s.metrics.IncrementCreditCacheLookup("expired")
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.IncrementCreditCacheLookup("miss")
		default:
			s.logger.WarnContext(ctx, "credit cache lookup failed", "error", err)
		}
	}

	result, err := s.credit.Check(ctx, personal)
	if err != nil {
		return nil, false, err
	}

	if s.creditCache != nil {
		if err := s.creditCache.Put(ctx, result); err != nil {
			s.logger.WarnContext(ctx, "failed to cache credit result", "error", err)
		}
	}
	return result, false, nil
}
