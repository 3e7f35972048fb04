package cache

import (
	"context"

	"weather-search/internal/domain/model"
	"weather-search/pkg/redis"
)

type RedisHealthGateway struct {
	checker *redis.HealthChecker
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

// NewRedisHealthGateway reports UNKNOWN when checker is nil, meaning caching is disabled
func NewRedisHealthGateway(checker *redis.HealthChecker) *RedisHealthGateway {
	return &RedisHealthGateway{checker: checker}
}

func (gateway *RedisHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	if gateway.checker == nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "cache disabled"},
		}
	}

	result := gateway.checker.HealthCheck(ctx)
	status := model.StatusDown
	if result.Status == redis.StatusUp {
		status = model.StatusUp
	}
	return model.ComponentHealthStatus{Status: status, Details: result.Details}
}
