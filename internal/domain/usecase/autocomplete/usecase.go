package autocomplete

import (
	"context"

	"weather-search/internal/domain/model"
)

type UseCase interface {
	// Suggest merges directory and provider matches for query. It never fails:
	// a failing source is reported in the result outcomes and contributes nothing.
	Suggest(ctx context.Context, query string) model.SuggestResult
}
