package model

import "time"

// LookupConfig carries the upstream parameters shared by the resolver, fetcher and autocomplete
type LookupConfig struct {
	Language          string
	ResolveTimeout    time.Duration
	ForecastTimeout   time.Duration
	SuggestTimeout    time.Duration
	ForecastDays      int
	LocalSuggestLimit int
	APISuggestLimit   int
	MaxSuggestions    int
	MinQueryLength    int
	MaxCityNameLength int
}

// DefaultLookupConfig returns the defaults used when no property overrides them
func DefaultLookupConfig() LookupConfig {
	return LookupConfig{
		Language:          "ru",
		ResolveTimeout:    10 * time.Second,
		ForecastTimeout:   10 * time.Second,
		SuggestTimeout:    5 * time.Second,
		ForecastDays:      7,
		LocalSuggestLimit: 5,
		APISuggestLimit:   5,
		MaxSuggestions:    10,
		MinQueryLength:    2,
		MaxCityNameLength: 100,
	}
}
