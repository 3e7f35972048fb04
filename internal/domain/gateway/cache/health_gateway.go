package cache

import (
	"context"

	"weather-search/internal/domain/model"
)

type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
