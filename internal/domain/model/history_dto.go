package model

import "encoding/json"

// CitySearchDTO binds the weather search query
type CitySearchDTO struct {
	City string `query:"city" validate:"required,max=100"`
}

// HistoryQueryDTO binds the history paging query
type HistoryQueryDTO struct {
	Page int `query:"page" validate:"gte=0"`
	Size int `query:"size" validate:"gte=1,lte=100"`
}

// SearchRecordMessage is the payload recorded for every successful search,
// published to the history queue when recording is asynchronous
type SearchRecordMessage struct {
	SessionKey  string            `json:"sessionKey"`
	CityName    string            `json:"cityName"`
	Country     string            `json:"country"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	WeatherData FormattedForecast `json:"weatherData"`
	SearchedAt  string            `json:"searchedAt"`
}

// HistoryEntry is one search of a session
type HistoryEntry struct {
	ID          string          `json:"id"`
	City        string          `json:"city"`
	Country     string          `json:"country"`
	SearchDate  string          `json:"search_date"`
	WeatherData json.RawMessage `json:"weather_data" swaggertype:"object"`
}

// PopularCity aggregates searches of one city across sessions
type PopularCity struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	SearchCount int64  `json:"search_count"`
}

// StatsResponse is returned by the stats endpoint
type StatsResponse struct {
	Status        string        `json:"status"`
	PopularCities []PopularCity `json:"popular_cities"`
	TotalCount    int           `json:"total_count"`
}

// PreviousCitiesResponse lists the cities kept in the visitor cookie
type PreviousCitiesResponse struct {
	Status         string   `json:"status"`
	PreviousCities []string `json:"previous_cities"`
}

// HistoryResponse is returned by the session history endpoint
type HistoryResponse struct {
	Status     string         `json:"status"`
	History    []HistoryEntry `json:"history"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
}
