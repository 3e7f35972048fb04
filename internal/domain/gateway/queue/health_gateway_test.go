package queue

import (
	"testing"

	"weather-search/internal/domain/model"
	"weather-search/pkg/sqs"

	"github.com/stretchr/testify/assert"
)

type stubWorker struct {
	health sqs.WorkerHealth
}

func (s stubWorker) HealthCheck() sqs.WorkerHealth {
	return s.health
}

func TestQueueHealthWithoutWorkers(t *testing.T) {
	health := NewQueueHealthGateway().Health()
	assert.Equal(t, model.StatusUnknown, health.Status)
	assert.Equal(t, "0", health.Details["workers_count"])
}

func TestQueueHealthAggregatesWorkers(t *testing.T) {
	gateway := NewQueueHealthGateway()
	gateway.RegisterWorker("history", stubWorker{health: sqs.WorkerHealth{Status: sqs.StatusUp, Details: map[string]string{"queue": "search-history"}}})

	health := gateway.Health()
	assert.Equal(t, model.StatusUp, health.Status)
	assert.Equal(t, "search-history", health.Details["history_queue"])
	assert.Equal(t, "1", health.Details["workers_up"])

	gateway.RegisterWorker("other", stubWorker{health: sqs.WorkerHealth{Status: sqs.StatusDown}})
	health = gateway.Health()
	assert.Equal(t, model.StatusDown, health.Status)
	assert.Equal(t, "1", health.Details["workers_down"])

	gateway.UnregisterWorker("other")
	assert.Equal(t, model.StatusUp, gateway.Health().Status)
}
