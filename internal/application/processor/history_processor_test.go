package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"weather-search/internal/domain/model"
)

type MockHistoryUseCase struct {
	mock.Mock
}

func (m *MockHistoryUseCase) RecordSearch(ctx context.Context, record model.SearchRecordMessage) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockHistoryUseCase) SaveHistory(ctx context.Context, record model.SearchRecordMessage) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockHistoryUseCase) GetHistory(ctx context.Context, sessionKey string, page int, size int) (*model.Page[model.HistoryEntry], error) {
	args := m.Called(ctx, sessionKey, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.HistoryEntry]), args.Error(1)
}

func (m *MockHistoryUseCase) ClearHistory(ctx context.Context, sessionKey string) (int64, error) {
	args := m.Called(ctx, sessionKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryUseCase) DeleteSearch(ctx context.Context, sessionKey string, id string) error {
	return m.Called(ctx, sessionKey, id).Error(0)
}

func (m *MockHistoryUseCase) GetPopularCities(ctx context.Context, limit int) ([]model.PopularCity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PopularCity), args.Error(1)
}

func (m *MockHistoryUseCase) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func message(body string) *types.Message {
	return &types.Message{MessageId: aws.String("m-1"), Body: aws.String(body)}
}

func TestHandleMessageSavesHistory(t *testing.T) {
	useCase := new(MockHistoryUseCase)
	useCase.On("SaveHistory", mock.Anything, mock.MatchedBy(func(record model.SearchRecordMessage) bool {
		return record.SessionKey == "s-1" && record.CityName == "Москва" && record.Latitude == 55.75
	})).Return(nil)

	err := NewHistoryProcessor(useCase).HandleMessage(context.Background(),
		message(`{"sessionKey":"s-1","cityName":"Москва","country":"Россия","latitude":55.75,"longitude":37.61}`))

	assert.NoError(t, err)
	useCase.AssertExpectations(t)
}

func TestHandleMessageDropsMalformedBody(t *testing.T) {
	useCase := new(MockHistoryUseCase)

	err := NewHistoryProcessor(useCase).HandleMessage(context.Background(), message(`{not json`))

	assert.NoError(t, err)
	useCase.AssertNotCalled(t, "SaveHistory", mock.Anything, mock.Anything)
}

func TestHandleMessageDropsInvalidRecord(t *testing.T) {
	useCase := new(MockHistoryUseCase)
	useCase.On("SaveHistory", mock.Anything, mock.Anything).Return(&model.ValidationError{Field: "search record", Reason: "session and city are required"})

	assert.NoError(t, NewHistoryProcessor(useCase).HandleMessage(context.Background(), message(`{}`)))
}

func TestHandleMessageRetriesOnStoreFailure(t *testing.T) {
	useCase := new(MockHistoryUseCase)
	useCase.On("SaveHistory", mock.Anything, mock.Anything).Return(errors.New("db down"))

	err := NewHistoryProcessor(useCase).HandleMessage(context.Background(), message(`{"sessionKey":"s-1","cityName":"Рим"}`))

	assert.ErrorContains(t, err, "db down")
}

func TestHandleMessageRejectsNil(t *testing.T) {
	assert.Error(t, NewHistoryProcessor(new(MockHistoryUseCase)).HandleMessage(context.Background(), nil))
}
