package api

import (
	"context"

	"weather-search/internal/domain/model/external"
)

// GeocodingGateway resolves city names into coordinates
type GeocodingGateway interface {
	// Search returns up to count matches for name, localized in language.
	// An empty slice means the provider found nothing.
	Search(ctx context.Context, name string, count int, language string) ([]external.GeocodingResult, error)
}
