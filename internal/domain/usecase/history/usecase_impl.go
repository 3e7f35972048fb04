package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"weather-search/internal/domain/entity"
	"weather-search/internal/domain/gateway/db"
	"weather-search/internal/domain/gateway/queue"
	"weather-search/internal/domain/model"
	"weather-search/pkg/log"
	"weather-search/pkg/metrics"
	"weather-search/pkg/msg"
	"weather-search/pkg/util/numberutils"

	"github.com/google/uuid"
)

const searchDateLayout = "2006-01-02 15:04:05"

type historyUseCase struct {
	queueName     string
	queueSender   queue.Sender
	cityGateway   db.CityGateway
	recordGateway db.SearchRecordGateway
}

// NewHistoryUseCase records searches inline when queueSender is nil
func NewHistoryUseCase(queueName string, queueSender queue.Sender, cityGateway db.CityGateway, recordGateway db.SearchRecordGateway) UseCase {
	return &historyUseCase{
		queueName:     queueName,
		queueSender:   queueSender,
		cityGateway:   cityGateway,
		recordGateway: recordGateway,
	}
}

func (uc *historyUseCase) RecordSearch(ctx context.Context, record model.SearchRecordMessage) error {
	if uc.queueSender == nil {
		err := uc.SaveHistory(ctx, record)
		metrics.ObserveHistoryRecord("inline", err)
		return err
	}

	err := uc.queueSender.SendMessage(ctx, uc.queueName, record)
	metrics.ObserveHistoryRecord("queue", err)
	if err != nil {
		return fmt.Errorf("failed to enqueue search of %s: %w", record.CityName, err)
	}
	return nil
}

func (uc *historyUseCase) SaveHistory(ctx context.Context, record model.SearchRecordMessage) error {
	if record.SessionKey == "" || record.CityName == "" {
		return &model.ValidationError{Field: "search record", Reason: "session and city are required"}
	}

	city, err := uc.cityGateway.GetOrCreate(ctx, entity.City{
		Name:      record.CityName,
		Country:   record.Country,
		Latitude:  record.Latitude,
		Longitude: record.Longitude,
	})
	if err != nil {
		return fmt.Errorf("failed to get or create city %s: %w", record.CityName, err)
	}

	weatherData, err := json.Marshal(record.WeatherData)
	if err != nil {
		return fmt.Errorf("failed to serialize weather data: %w", err)
	}

	searchDate := time.Now().UTC()
	if parsed, err := time.Parse(time.RFC3339, record.SearchedAt); err == nil {
		searchDate = parsed.UTC()
	}

	saved, err := uc.recordGateway.Create(ctx, entity.SearchRecord{
		SessionKey:  record.SessionKey,
		CityID:      city.ID,
		SearchDate:  searchDate,
		WeatherData: string(weatherData),
	})
	if err != nil {
		return fmt.Errorf("failed to save search of %s: %w", city.Name, err)
	}

	log.Debug(msg.GetMessage("history.saved", saved.ID, city.Name, record.SessionKey))
	return nil
}

func (uc *historyUseCase) GetHistory(ctx context.Context, sessionKey string, page int, size int) (*model.Page[model.HistoryEntry], error) {
	if sessionKey == "" {
		return model.NewPage([]model.HistoryEntry{}, page, size, 0), nil
	}

	var wg sync.WaitGroup
	var views []entity.SearchRecordView
	var total int64
	var viewsErr, countErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		views, viewsErr = uc.recordGateway.FindBySession(ctx, sessionKey, page, size)
	}()
	go func() {
		defer wg.Done()
		total, countErr = uc.recordGateway.CountBySession(ctx, sessionKey)
	}()
	wg.Wait()

	if viewsErr != nil {
		return nil, fmt.Errorf("failed to find session history: %w", viewsErr)
	}
	if countErr != nil {
		return nil, fmt.Errorf("failed to count session history: %w", countErr)
	}

	entries := make([]model.HistoryEntry, 0, len(views))
	for _, view := range views {
		entries = append(entries, model.HistoryEntry{
			ID:          view.ID,
			City:        view.CityName,
			Country:     view.Country,
			SearchDate:  view.SearchDate.UTC().Format(searchDateLayout),
			WeatherData: json.RawMessage(view.WeatherData),
		})
	}

	return model.NewPage(entries, page, size, total), nil
}

func (uc *historyUseCase) ClearHistory(ctx context.Context, sessionKey string) (int64, error) {
	if sessionKey == "" {
		return 0, nil
	}
	deleted, err := uc.recordGateway.DeleteBySession(ctx, sessionKey)
	if err != nil {
		return 0, fmt.Errorf("failed to clear session history: %w", err)
	}
	return deleted, nil
}

func (uc *historyUseCase) DeleteSearch(ctx context.Context, sessionKey string, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &model.NotFoundError{Resource: "search", Key: id}
	}
	deleted, err := uc.recordGateway.DeleteByIDAndSession(ctx, id, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to delete search %s: %w", id, err)
	}
	if deleted == 0 {
		return &model.NotFoundError{Resource: "search", Key: id}
	}
	return nil
}

func (uc *historyUseCase) GetPopularCities(ctx context.Context, limit int) ([]model.PopularCity, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	limit = numberutils.ClampInt(limit, 1, MaxPopularLimit)

	counts, err := uc.recordGateway.CountPopular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count popular cities: %w", err)
	}

	popular := make([]model.PopularCity, 0, len(counts))
	for _, count := range counts {
		popular = append(popular, model.PopularCity{
			City:        count.CityName,
			Country:     count.Country,
			SearchCount: count.SearchCount,
		})
	}
	return popular, nil
}

func (uc *historyUseCase) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := uc.recordGateway.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge history before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return deleted, nil
}
