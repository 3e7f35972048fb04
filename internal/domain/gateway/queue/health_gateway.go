package queue

import (
	"weather-search/internal/domain/model"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker WorkerHealthChecker)
	UnregisterWorker(name string)
}
