// Package payoff runs loan calculations for the CLI and the HTTP server,
// adding validation, result caching and logging around the amortization engine.
package payoff

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iwvelando/mortgage-payoff/internal/cache"
	"github.com/iwvelando/mortgage-payoff/pkg/amortization"
	"github.com/iwvelando/mortgage-payoff/pkg/mathutil"
	"github.com/iwvelando/mortgage-payoff/pkg/validation"
	"go.uber.org/zap"
)

// Service calculates payoff comparisons. The cache is optional.
type Service struct {
	logger *zap.Logger
	cache  cache.Cache
}

// NewService creates a Service. A nil logger is replaced with a no-op logger
// and a nil cache disables caching.
func NewService(logger *zap.Logger, c cache.Cache) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, cache: c}
}

// Calculate validates the input and returns its payoff comparison, serving
// from the cache when a previous identical calculation is stored. Cache
// failures are logged and never fail the calculation.
func (s *Service) Calculate(ctx context.Context, in amortization.Input) (*amortization.Comparison, error) {
	if err := validation.ValidateInput(in); err != nil {
		return nil, err
	}

	key := s.cacheKey(in)
	if cached, ok := s.lookup(ctx, key); ok {
		return cached, nil
	}

	result, err := amortization.Calculate(in)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate payoff: %w", err)
	}

	s.logger.Debug("calculated payoff comparison",
		zap.String("op", "payoff.Calculate"),
		zap.String("mode", result.Mode),
		zap.Int("originalPeriods", result.Original.TotalPeriods),
		zap.Int("newPeriods", result.New.TotalPeriods),
		zap.Int("timeSavedMonths", result.Savings.TimeSavedMonths),
		zap.Float64("interestSaved", mathutil.Round(result.Savings.InterestSaved)),
	)

	s.store(ctx, key, result)
	return result, nil
}

func (s *Service) cacheKey(in amortization.Input) string {
	if s.cache == nil {
		return ""
	}
	key, err := cache.Key(in)
	if err != nil {
		s.logger.Warn("failed to derive cache key",
			zap.String("op", "payoff.cacheKey"),
			zap.Error(err),
		)
		return ""
	}
	return key
}

func (s *Service) lookup(ctx context.Context, key string) (*amortization.Comparison, bool) {
	if key == "" {
		return nil, false
	}

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read cached result",
			zap.String("op", "payoff.lookup"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var result amortization.Comparison
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Warn("discarding malformed cached result",
			zap.String("op", "payoff.lookup"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}

	s.logger.Debug("serving cached payoff comparison",
		zap.String("op", "payoff.lookup"),
		zap.String("key", key),
	)
	return &result, true
}

func (s *Service) store(ctx context.Context, key string, result *amortization.Comparison) {
	if key == "" {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode result for cache",
			zap.String("op", "payoff.store"),
			zap.Error(err),
		)
		return
	}

	if err := s.cache.Set(ctx, key, string(data)); err != nil {
		s.logger.Warn("failed to cache result",
			zap.String("op", "payoff.store"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
