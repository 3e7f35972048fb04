package db

import (
	"context"
	"time"

	"weather-search/internal/domain/entity"
	"weather-search/internal/domain/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormSearchRecordGateway struct {
	DB *gorm.DB
}

var _ SearchRecordGateway = (*GormSearchRecordGateway)(nil)

func NewGormSearchRecordGateway(db *gorm.DB) *GormSearchRecordGateway {
	return &GormSearchRecordGateway{DB: db}
}

// Create stores record, assigning its id and search date when missing
func (gateway *GormSearchRecordGateway) Create(ctx context.Context, record entity.SearchRecord) (*entity.SearchRecord, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.SearchDate.IsZero() {
		record.SearchDate = time.Now().UTC()
	}

	if err := gateway.DB.WithContext(ctx).Omit("City").Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (gateway *GormSearchRecordGateway) FindBySession(ctx context.Context, sessionKey string, page int, size int) ([]entity.SearchRecordView, error) {
	views := make([]entity.SearchRecordView, 0)
	err := gateway.DB.WithContext(ctx).
		Table("search_records AS sr").
		Select("sr.id, c.name AS city_name, c.country, sr.search_date, sr.weather_data").
		Joins("JOIN cities AS c ON c.id = sr.city_id").
		Where("sr.session_key = ?", sessionKey).
		Order("sr.search_date DESC").
		Offset(model.PageOffset(page, size)).
		Limit(size).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (gateway *GormSearchRecordGateway) CountBySession(ctx context.Context, sessionKey string) (int64, error) {
	var count int64
	err := gateway.DB.WithContext(ctx).
		Model(&entity.SearchRecord{}).
		Where("session_key = ?", sessionKey).
		Count(&count).Error
	return count, err
}

func (gateway *GormSearchRecordGateway) DeleteBySession(ctx context.Context, sessionKey string) (int64, error) {
	result := gateway.DB.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		Delete(&entity.SearchRecord{})
	return result.RowsAffected, result.Error
}

func (gateway *GormSearchRecordGateway) DeleteByIDAndSession(ctx context.Context, id string, sessionKey string) (int64, error) {
	result := gateway.DB.WithContext(ctx).
		Where("id = ? AND session_key = ?", id, sessionKey).
		Delete(&entity.SearchRecord{})
	return result.RowsAffected, result.Error
}

func (gateway *GormSearchRecordGateway) CountPopular(ctx context.Context, limit int) ([]entity.CitySearchCount, error) {
	counts := make([]entity.CitySearchCount, 0)
	err := gateway.DB.WithContext(ctx).
		Table("search_records AS sr").
		Select("c.name AS city_name, c.country, COUNT(sr.id) AS search_count").
		Joins("JOIN cities AS c ON c.id = sr.city_id").
		Group("c.id, c.name, c.country").
		Order("search_count DESC, c.name ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (gateway *GormSearchRecordGateway) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := gateway.DB.WithContext(ctx).
		Where("search_date < ?", cutoff).
		Delete(&entity.SearchRecord{})
	return result.RowsAffected, result.Error
}
