package db

import (
	"context"

	"weather-search/internal/domain/entity"
)

// CityGateway is the City Directory
type CityGateway interface {
	// FindByNameIgnoreCase returns nil, nil when no city has that name
	FindByNameIgnoreCase(ctx context.Context, name string) (*entity.City, error)
	// SearchByNameContains matches fragment anywhere in the name, case-insensitively
	SearchByNameContains(ctx context.Context, fragment string, limit int) ([]entity.City, error)
	// GetOrCreate inserts city unless one with the same name exists, returning the stored row either way
	GetOrCreate(ctx context.Context, city entity.City) (*entity.City, error)
}
