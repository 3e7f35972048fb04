package entity

// City is a geocoded city. Coordinates never change once stored.
type City struct {
	ID        string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CreatedAt string  `json:"createdDate" gorm:"->"`
}

func (City) TableName() string {
	return "cities"
}
