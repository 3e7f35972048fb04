package health

import (
	"context"
	"sync"

	"weather-search/internal/domain/gateway/cache"
	"weather-search/internal/domain/gateway/db"
	"weather-search/internal/domain/gateway/queue"
	"weather-search/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	cacheGateway cache.HealthGateway
	queueGateway queue.HealthGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, cacheGateway cache.HealthGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		cacheGateway: cacheGateway,
		queueGateway: queueGateway,
	}
}

// CheckHealth reports DOWN when any component is DOWN. UNKNOWN components (disabled cache or queue) are ignored.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	var wg sync.WaitGroup
	var dbHealth, cacheHealth model.ComponentHealthStatus

	wg.Add(2)
	go func() {
		defer wg.Done()
		dbHealth = useCase.dbGateway.Health(ctx)
	}()
	go func() {
		defer wg.Done()
		cacheHealth = useCase.cacheGateway.Health(ctx)
	}()
	queueHealth := useCase.queueGateway.Health()
	wg.Wait()

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{dbHealth, cacheHealth, queueHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Cache:    cacheHealth,
		Queue:    queueHealth,
	}
}
