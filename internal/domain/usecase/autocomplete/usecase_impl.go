package autocomplete

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"weather-search/internal/domain/gateway/api"
	"weather-search/internal/domain/gateway/db"
	"weather-search/internal/domain/model"
	"weather-search/internal/domain/model/external"
	"weather-search/pkg/log"
	"weather-search/pkg/metrics"
	"weather-search/pkg/msg"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const remoteCacheName = "suggestions"

type autocompleteUseCase struct {
	config           model.LookupConfig
	cityGateway      db.CityGateway
	geocodingGateway api.GeocodingGateway
	remoteCache      *gocache.Cache
}

// NewAutocompleteUseCase keeps provider answers for remoteCacheTTL; zero disables the cache
func NewAutocompleteUseCase(config model.LookupConfig, cityGateway db.CityGateway, geocodingGateway api.GeocodingGateway, remoteCacheTTL time.Duration) UseCase {
	uc := &autocompleteUseCase{
		config:           config,
		cityGateway:      cityGateway,
		geocodingGateway: geocodingGateway,
	}
	if remoteCacheTTL > 0 {
		uc.remoteCache = gocache.New(remoteCacheTTL, 2*remoteCacheTTL)
	}
	return uc
}

func (uc *autocompleteUseCase) Suggest(ctx context.Context, query string) model.SuggestResult {
	query = strings.TrimSpace(query)
	result := model.SuggestResult{
		Query:       query,
		Suggestions: []model.Suggestion{},
		Local:       model.PhaseSkipped,
		Remote:      model.PhaseSkipped,
	}
	if utf8.RuneCountInString(query) < uc.config.MinQueryLength {
		return result
	}

	var local, remote []model.Suggestion
	var group errgroup.Group

	group.Go(func() error {
		local, result.Local = uc.localSuggestions(ctx, query)
		return nil
	})
	group.Go(func() error {
		remote, result.Remote = uc.remoteSuggestions(ctx, query)
		return nil
	})
	_ = group.Wait()

	metrics.ObserveAutocompletePhase("local", string(result.Local))
	metrics.ObserveAutocompletePhase("remote", string(result.Remote))

	result.Suggestions = merge(uc.config.MaxSuggestions, local, remote)
	return result
}

func (uc *autocompleteUseCase) localSuggestions(ctx context.Context, query string) ([]model.Suggestion, model.PhaseOutcome) {
	cities, err := uc.cityGateway.SearchByNameContains(ctx, query, uc.config.LocalSuggestLimit)
	if err != nil {
		log.Warn(msg.GetMessage("autocomplete.local-fail", query), zap.Error(err))
		return nil, model.PhaseFailed
	}
	if len(cities) == 0 {
		return nil, model.PhaseEmpty
	}

	suggestions := make([]model.Suggestion, 0, len(cities))
	for _, city := range cities {
		latitude, longitude := city.Latitude, city.Longitude
		suggestions = append(suggestions, model.Suggestion{
			Value:     city.Name,
			Label:     joinLabel(city.Name, city.Country),
			Source:    model.SuggestionSourceLocal,
			Latitude:  &latitude,
			Longitude: &longitude,
			Country:   city.Country,
		})
	}
	return suggestions, model.PhaseOK
}

func (uc *autocompleteUseCase) remoteSuggestions(ctx context.Context, query string) ([]model.Suggestion, model.PhaseOutcome) {
	cacheKey := strings.ToLower(query)
	if uc.remoteCache != nil {
		if cached, found := uc.remoteCache.Get(cacheKey); found {
			metrics.ObserveCache(remoteCacheName, true)
			suggestions := cached.([]model.Suggestion)
			if len(suggestions) == 0 {
				return nil, model.PhaseEmpty
			}
			return suggestions, model.PhaseOK
		}
		metrics.ObserveCache(remoteCacheName, false)
	}

	remoteCtx, cancel := context.WithTimeout(ctx, uc.config.SuggestTimeout)
	defer cancel()

	results, err := uc.geocodingGateway.Search(remoteCtx, query, uc.config.APISuggestLimit, uc.config.Language)
	if err != nil {
		log.Warn(msg.GetMessage("autocomplete.remote-fail", query), zap.Error(err))
		return nil, model.PhaseFailed
	}

	suggestions := make([]model.Suggestion, 0, len(results))
	for _, result := range results {
		suggestions = append(suggestions, toSuggestion(result))
	}
	if uc.remoteCache != nil {
		uc.remoteCache.SetDefault(cacheKey, suggestions)
	}

	if len(suggestions) == 0 {
		return nil, model.PhaseEmpty
	}
	return suggestions, model.PhaseOK
}

func toSuggestion(result external.GeocodingResult) model.Suggestion {
	parts := []string{result.Name}
	if result.Admin1 != "" && result.Admin1 != result.Name {
		parts = append(parts, result.Admin1)
	}
	parts = append(parts, result.Country)

	return model.Suggestion{
		Value:      result.Name,
		Label:      joinLabel(parts...),
		Source:     model.SuggestionSourceAPI,
		Latitude:   result.Latitude,
		Longitude:  result.Longitude,
		Country:    result.Country,
		Admin1:     result.Admin1,
		Population: result.Population,
	}
}

// merge concatenates the sources in order, keeping the first suggestion of each value
func merge(limit int, sources ...[]model.Suggestion) []model.Suggestion {
	merged := make([]model.Suggestion, 0, limit)
	seen := make(map[string]struct{})
	for _, source := range sources {
		for _, suggestion := range source {
			if len(merged) == limit {
				return merged
			}
			if _, duplicate := seen[suggestion.Value]; duplicate {
				continue
			}
			seen[suggestion.Value] = struct{}{}
			merged = append(merged, suggestion)
		}
	}
	return merged
}

func joinLabel(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
