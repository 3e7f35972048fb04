package api

import (
	"errors"
	"fmt"

	"weather-search/internal/domain/model"
	"weather-search/internal/domain/model/external"
	"weather-search/pkg/http"
)

const provider = "open-meteo"

// toUpstreamError converts a client failure into a model.UpstreamError, keeping the provider's reason when present
func toUpstreamError(op string, status int, errResp any, err error) error {
	cause := err
	if apiErr, ok := errResp.(*external.APIErrorResponse); ok && apiErr != nil && apiErr.Reason != "" {
		cause = fmt.Errorf("%s: %w", apiErr.Reason, err)
	}

	var statusErr *http.StatusError
	if errors.As(err, &statusErr) {
		status = statusErr.StatusCode
	}

	return &model.UpstreamError{
		Provider:   provider,
		Op:         op,
		StatusCode: status,
		Err:        cause,
	}
}
