package history

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"weather-search/internal/domain/entity"
	"weather-search/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCityGateway struct {
	mock.Mock
}

func (m *MockCityGateway) FindByNameIgnoreCase(ctx context.Context, name string) (*entity.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.City), args.Error(1)
}

func (m *MockCityGateway) SearchByNameContains(ctx context.Context, fragment string, limit int) ([]entity.City, error) {
	args := m.Called(ctx, fragment, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.City), args.Error(1)
}

func (m *MockCityGateway) GetOrCreate(ctx context.Context, city entity.City) (*entity.City, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.City), args.Error(1)
}

type MockSearchRecordGateway struct {
	mock.Mock
}

func (m *MockSearchRecordGateway) Create(ctx context.Context, record entity.SearchRecord) (*entity.SearchRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SearchRecord), args.Error(1)
}

func (m *MockSearchRecordGateway) FindBySession(ctx context.Context, sessionKey string, page int, size int) ([]entity.SearchRecordView, error) {
	args := m.Called(ctx, sessionKey, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SearchRecordView), args.Error(1)
}

func (m *MockSearchRecordGateway) CountBySession(ctx context.Context, sessionKey string) (int64, error) {
	args := m.Called(ctx, sessionKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSearchRecordGateway) DeleteBySession(ctx context.Context, sessionKey string) (int64, error) {
	args := m.Called(ctx, sessionKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSearchRecordGateway) DeleteByIDAndSession(ctx context.Context, id string, sessionKey string) (int64, error) {
	args := m.Called(ctx, id, sessionKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSearchRecordGateway) CountPopular(ctx context.Context, limit int) ([]entity.CitySearchCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CitySearchCount), args.Error(1)
}

func (m *MockSearchRecordGateway) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, queueName string, body any) error {
	return m.Called(ctx, queueName, body).Error(0)
}

var searchMessage = model.SearchRecordMessage{
	SessionKey: "session-1",
	CityName:   "Москва",
	Country:    "Россия",
	Latitude:   55.75,
	Longitude:  37.61,
	SearchedAt: "2024-12-01T10:00:00Z",
}

func TestSaveHistory(t *testing.T) {
	cities := new(MockCityGateway)
	records := new(MockSearchRecordGateway)
	cities.On("GetOrCreate", mock.Anything, entity.City{Name: "Москва", Country: "Россия", Latitude: 55.75, Longitude: 37.61}).
		Return(&entity.City{ID: "c-1", Name: "Москва"}, nil)
	records.On("Create", mock.Anything, mock.MatchedBy(func(record entity.SearchRecord) bool {
		return record.CityID == "c-1" &&
			record.SessionKey == "session-1" &&
			record.SearchDate.Equal(time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)) &&
			json.Valid([]byte(record.WeatherData))
	})).Return(&entity.SearchRecord{ID: "r-1"}, nil)

	err := NewHistoryUseCase("", nil, cities, records).SaveHistory(context.Background(), searchMessage)

	require.NoError(t, err)
	records.AssertExpectations(t)
}

func TestSaveHistoryRejectsIncompleteRecord(t *testing.T) {
	err := NewHistoryUseCase("", nil, new(MockCityGateway), new(MockSearchRecordGateway)).
		SaveHistory(context.Background(), model.SearchRecordMessage{CityName: "Москва"})

	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestRecordSearchInline(t *testing.T) {
	cities := new(MockCityGateway)
	records := new(MockSearchRecordGateway)
	cities.On("GetOrCreate", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	err := NewHistoryUseCase("", nil, cities, records).RecordSearch(context.Background(), searchMessage)

	assert.ErrorContains(t, err, "db down")
	records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordSearchQueued(t *testing.T) {
	sender := new(MockSender)
	cities := new(MockCityGateway)
	sender.On("SendMessage", mock.Anything, "search-history", searchMessage).Return(nil)

	err := NewHistoryUseCase("search-history", sender, cities, new(MockSearchRecordGateway)).RecordSearch(context.Background(), searchMessage)

	require.NoError(t, err)
	sender.AssertExpectations(t)
	cities.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
}

func TestGetHistory(t *testing.T) {
	records := new(MockSearchRecordGateway)
	records.On("FindBySession", mock.Anything, "session-1", 0, 2).Return([]entity.SearchRecordView{
		{ID: "r-2", CityName: "Париж", Country: "Франция", SearchDate: time.Date(2024, 12, 2, 9, 30, 0, 0, time.UTC), WeatherData: `{"current":{}}`},
		{ID: "r-1", CityName: "Москва", Country: "Россия", SearchDate: time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC), WeatherData: `{}`},
	}, nil)
	records.On("CountBySession", mock.Anything, "session-1").Return(int64(3), nil)

	page, err := NewHistoryUseCase("", nil, new(MockCityGateway), records).GetHistory(context.Background(), "session-1", 0, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Париж", page.Content[0].City)
	assert.Equal(t, "2024-12-02 09:30:00", page.Content[0].SearchDate)
	assert.JSONEq(t, `{"current":{}}`, string(page.Content[0].WeatherData))
}

func TestGetHistoryWithoutSession(t *testing.T) {
	records := new(MockSearchRecordGateway)

	page, err := NewHistoryUseCase("", nil, new(MockCityGateway), records).GetHistory(context.Background(), "", 0, 10)

	require.NoError(t, err)
	assert.Empty(t, page.Content)
	records.AssertNotCalled(t, "FindBySession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteSearch(t *testing.T) {
	records := new(MockSearchRecordGateway)
	existing := "9b2f6c1e-3d4a-4f5b-8c7d-1e2f3a4b5c6d"
	missing := "0f1e2d3c-4b5a-4978-8695-a4b3c2d1e0f9"
	records.On("DeleteByIDAndSession", mock.Anything, existing, "session-1").Return(int64(1), nil)
	records.On("DeleteByIDAndSession", mock.Anything, missing, "session-1").Return(int64(0), nil)
	useCase := NewHistoryUseCase("", nil, new(MockCityGateway), records)

	assert.NoError(t, useCase.DeleteSearch(context.Background(), "session-1", existing))
	assert.ErrorIs(t, useCase.DeleteSearch(context.Background(), "session-1", missing), model.ErrNotFound)
}

func TestDeleteSearchMalformedIDIsNotFound(t *testing.T) {
	records := new(MockSearchRecordGateway)
	useCase := NewHistoryUseCase("", nil, new(MockCityGateway), records)

	for _, id := range []string{"abc", "", "r-1", "9b2f6c1e-3d4a"} {
		err := useCase.DeleteSearch(context.Background(), "session-1", id)
		assert.ErrorIs(t, err, model.ErrNotFound, id)
	}
	records.AssertNotCalled(t, "DeleteByIDAndSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestClearHistory(t *testing.T) {
	records := new(MockSearchRecordGateway)
	records.On("DeleteBySession", mock.Anything, "session-1").Return(int64(4), nil)
	useCase := NewHistoryUseCase("", nil, new(MockCityGateway), records)

	deleted, err := useCase.ClearHistory(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	deleted, err = useCase.ClearHistory(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, deleted)
	records.AssertNumberOfCalls(t, "DeleteBySession", 1)
}

func TestGetPopularCities(t *testing.T) {
	records := new(MockSearchRecordGateway)
	records.On("CountPopular", mock.Anything, DefaultPopularLimit).Return([]entity.CitySearchCount{
		{CityName: "Москва", Country: "Россия", SearchCount: 15},
	}, nil)
	records.On("CountPopular", mock.Anything, MaxPopularLimit).Return([]entity.CitySearchCount{}, nil)
	useCase := NewHistoryUseCase("", nil, new(MockCityGateway), records)

	popular, err := useCase.GetPopularCities(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []model.PopularCity{{City: "Москва", Country: "Россия", SearchCount: 15}}, popular)

	popular, err = useCase.GetPopularCities(context.Background(), 5000)
	require.NoError(t, err)
	assert.Empty(t, popular)
}

func TestPurgeOlderThan(t *testing.T) {
	records := new(MockSearchRecordGateway)
	cutoff := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	records.On("DeleteOlderThan", mock.Anything, cutoff).Return(int64(12), nil)

	deleted, err := NewHistoryUseCase("", nil, new(MockCityGateway), records).PurgeOlderThan(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
}
