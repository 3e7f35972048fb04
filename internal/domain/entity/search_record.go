package entity

import "time"

// SearchRecord is one weather search of a session
type SearchRecord struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	SessionKey  string    `json:"sessionKey" gorm:"column:session_key;index"`
	CityID      string    `json:"cityId" gorm:"column:city_id;type:uuid"`
	City        *City     `json:"city,omitempty" gorm:"foreignKey:CityID;constraint:OnDelete:CASCADE"`
	SearchDate  time.Time `json:"searchDate" gorm:"column:search_date;autoCreateTime:false"`
	WeatherData string    `json:"weatherData" gorm:"column:weather_data;type:jsonb"`
}

func (SearchRecord) TableName() string {
	return "search_records"
}

// SearchRecordView is a search record joined with its city
type SearchRecordView struct {
	ID          string
	CityName    string
	Country     string
	SearchDate  time.Time
	WeatherData string
}

// CitySearchCount is the number of searches of one city
type CitySearchCount struct {
	CityName    string
	Country     string
	SearchCount int64
}
