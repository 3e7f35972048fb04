package history

import (
	"context"
	"time"

	"weather-search/internal/domain/model"
)

const (
	DefaultPopularLimit = 10
	MaxPopularLimit     = 100
)

type UseCase interface {
	// RecordSearch publishes the search to the history queue when recording is asynchronous, otherwise saves it
	RecordSearch(ctx context.Context, record model.SearchRecordMessage) error

	// SaveHistory stores the city when unknown and appends the search to the session history
	SaveHistory(ctx context.Context, record model.SearchRecordMessage) error

	// GetHistory returns the session searches, newest first
	GetHistory(ctx context.Context, sessionKey string, page int, size int) (*model.Page[model.HistoryEntry], error)

	// ClearHistory removes every search of the session
	ClearHistory(ctx context.Context, sessionKey string) (int64, error)

	// DeleteSearch removes one search of the session
	DeleteSearch(ctx context.Context, sessionKey string, id string) error

	// GetPopularCities lists the most searched cities across sessions
	GetPopularCities(ctx context.Context, limit int) ([]model.PopularCity, error)

	// PurgeOlderThan removes searches made before cutoff
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
