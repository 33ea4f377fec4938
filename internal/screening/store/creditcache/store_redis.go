package creditcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sichrplace/internal/screening/models"
	"sichrplace/pkg/platform/sentinel"
	"sichrplace/pkg/requestcontext"
)

const creditResultKeyPrefix = "screening:credit:"

// cachedResult is the stored wire shape. Keys never contain PII; the identity
// key is already a digest.
type cachedResult struct {
	IdentityKey  string                `json:"identity_key"`
	CreditScore  int                   `json:"credit_score"`
	RiskCategory models.RiskLevel      `json:"risk_category"`
	CheckedAt    time.Time             `json:"checked_at"`
	ValidUntil   time.Time             `json:"valid_until"`
	Factors      []models.CreditFactor `json:"factors,omitempty"`
}

// RedisStore is the production credit cache. Entries expire via Redis TTL at
// their ValidUntil timestamp, so a hit is always inside the reuse window.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, identityKey string) (*models.CreditCheckResult, error) {
	payload, err := s.client.Get(ctx, creditResultKeyPrefix+identityKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached credit result: %w", err)
	}

	var cached cachedResult
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, fmt.Errorf("unmarshal cached credit result: %w", err)
	}

	result := models.CreditCheckResult{
		IdentityKey:  cached.IdentityKey,
		CreditScore:  cached.CreditScore,
		RiskCategory: cached.RiskCategory,
		CheckedAt:    cached.CheckedAt,
		ValidUntil:   cached.ValidUntil,
		Factors:      cached.Factors,
	}
	// TTL should have evicted stale entries; guard against clock drift anyway.
	if !result.IsValid(requestcontext.Now(ctx)) {
		return nil, sentinel.ErrExpired
	}
	return &result, nil
}

func (s *RedisStore) Put(ctx context.Context, result *models.CreditCheckResult) error {
	ttl := result.ValidUntil.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(cachedResult{
		IdentityKey:  result.IdentityKey,
		CreditScore:  result.CreditScore,
		RiskCategory: result.RiskCategory,
		CheckedAt:    result.CheckedAt,
		ValidUntil:   result.ValidUntil,
		Factors:      result.Factors,
	})
	if err != nil {
		return fmt.Errorf("marshal credit result: %w", err)
	}

	if err := s.client.Set(ctx, creditResultKeyPrefix+result.IdentityKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache credit result: %w", err)
	}
	return nil
}
