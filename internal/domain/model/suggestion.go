package model

const (
	SuggestionSourceLocal = "local"
	SuggestionSourceAPI   = "api"
)

// Suggestion is one autocomplete entry
type Suggestion struct {
	Value      string   `json:"value"`
	Label      string   `json:"label"`
	Source     string   `json:"source"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Country    string   `json:"country,omitempty"`
	Admin1     string   `json:"admin1,omitempty"`
	Population *int64   `json:"population,omitempty"`
}

// PhaseOutcome describes how one autocomplete source behaved
type PhaseOutcome string

const (
	PhaseOK      PhaseOutcome = "ok"
	PhaseEmpty   PhaseOutcome = "empty"
	PhaseFailed  PhaseOutcome = "failed"
	PhaseSkipped PhaseOutcome = "skipped"
)

// SuggestResult is the merged autocomplete answer plus per-source outcomes
type SuggestResult struct {
	Query       string
	Suggestions []Suggestion
	Local       PhaseOutcome
	Remote      PhaseOutcome
}

// AutocompleteResponse is returned by the autocomplete endpoint
type AutocompleteResponse struct {
	Status      string       `json:"status"`
	Suggestions []Suggestion `json:"suggestions"`
	Query       string       `json:"query"`
	TotalFound  int          `json:"total_found"`
	Message     string       `json:"message,omitempty"`
}
