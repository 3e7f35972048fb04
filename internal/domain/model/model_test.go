package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeWeatherCode(t *testing.T) {
	assert.Equal(t, "Clear sky", DescribeWeatherCode(0))
	assert.Equal(t, "Overcast", DescribeWeatherCode(3))
	assert.Equal(t, "Thunderstorm with heavy hail", DescribeWeatherCode(99))
	assert.Equal(t, UnknownWeatherDescription, DescribeWeatherCode(4))
	assert.Equal(t, UnknownWeatherDescription, DescribeWeatherCode(-1))
	assert.Len(t, WeatherCodes(), 28)

	for _, code := range WeatherCodes() {
		assert.Equal(t, DescribeWeatherCode(code), DescribeWeatherCode(code))
		assert.NotEqual(t, UnknownWeatherDescription, DescribeWeatherCode(code))
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	notFound := fmt.Errorf("resolve: %w", &NotFoundError{Resource: "city", Key: "Atlantis"})
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, notFound, ErrUpstream)
	assert.Equal(t, "resolve: city not found: Atlantis", notFound.Error())

	cause := errors.New("connection refused")
	upstream := &UpstreamError{Provider: "open-meteo", Op: "geocoding", Err: cause}
	assert.ErrorIs(t, upstream, ErrUpstream)
	assert.ErrorIs(t, upstream, cause)

	var target *UpstreamError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", upstream), &target))
	assert.Equal(t, "geocoding", target.Op)

	assert.ErrorIs(t, &ValidationError{Field: "city", Reason: "required"}, ErrValidation)
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 0, 2, 5)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.NumberOfElements)

	empty := NewPage[string](nil, 0, 10, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)

	assert.Equal(t, 20, PageOffset(2, 10))
	assert.Equal(t, 0, PageOffset(-1, 10))
}
