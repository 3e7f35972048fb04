package db

import (
	"context"
	"time"

	"weather-search/internal/domain/entity"
)

// SearchRecordGateway persists the search history
type SearchRecordGateway interface {
	Create(ctx context.Context, record entity.SearchRecord) (*entity.SearchRecord, error)
	// FindBySession returns a zero-based page of the session's searches, newest first
	FindBySession(ctx context.Context, sessionKey string, page int, size int) ([]entity.SearchRecordView, error)
	CountBySession(ctx context.Context, sessionKey string) (int64, error)
	DeleteBySession(ctx context.Context, sessionKey string) (int64, error)
	DeleteByIDAndSession(ctx context.Context, id string, sessionKey string) (int64, error)
	// CountPopular groups searches by city, most searched first
	CountPopular(ctx context.Context, limit int) ([]entity.CitySearchCount, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
