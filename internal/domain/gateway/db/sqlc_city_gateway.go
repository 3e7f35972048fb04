package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"weather-search/internal/domain/entity"

	"github.com/google/uuid"
)

const cityTimeLayout = "2006-01-02 15:04:05"

const citySelect = `
		SELECT id, name, country, latitude, longitude, to_char(created_at, 'YYYY-MM-DD HH24:MI:SS')
		FROM cities`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type SQLCCityGateway struct {
	DB *sql.DB
}

var _ CityGateway = (*SQLCCityGateway)(nil)

func NewSQLCCityGateway(db *sql.DB) *SQLCCityGateway {
	return &SQLCCityGateway{DB: db}
}

// FindByNameIgnoreCase finds a city by name ignoring case
func (gateway *SQLCCityGateway) FindByNameIgnoreCase(ctx context.Context, name string) (*entity.City, error) {
	var city entity.City
	err := gateway.DB.QueryRowContext(ctx, citySelect+`
		WHERE lower(name) = lower($1)`, name).
		Scan(&city.ID, &city.Name, &city.Country, &city.Latitude, &city.Longitude, &city.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

// SearchByNameContains lists up to limit cities whose name contains fragment
func (gateway *SQLCCityGateway) SearchByNameContains(ctx context.Context, fragment string, limit int) ([]entity.City, error) {
	rows, err := gateway.DB.QueryContext(ctx, citySelect+`
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name ASC
		LIMIT $2`, "%"+likeEscaper.Replace(fragment)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]entity.City, 0)
	for rows.Next() {
		var city entity.City
		if err := rows.Scan(&city.ID, &city.Name, &city.Country, &city.Latitude, &city.Longitude, &city.CreatedAt); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}

// GetOrCreate relies on the unique index on lower(name): a concurrent insert of the
// same city is discarded and the winner's row is read back
func (gateway *SQLCCityGateway) GetOrCreate(ctx context.Context, city entity.City) (*entity.City, error) {
	city.ID = uuid.New().String()
	city.CreatedAt = time.Now().UTC().Format(cityTimeLayout)

	_, err := gateway.DB.ExecContext(ctx, `
		INSERT INTO cities (id, name, country, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING`,
		city.ID, city.Name, city.Country, city.Latitude, city.Longitude, city.CreatedAt)
	if err != nil {
		return nil, err
	}

	stored, err := gateway.FindByNameIgnoreCase(ctx, city.Name)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("city %s vanished after insert", city.Name)
	}
	return stored, nil
}
