package controller

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	previousCitiesCookie = "previous_cities"
	maxPreviousCities    = 5
	previousCitiesMaxAge = 30 * 24 * time.Hour
)

// readPreviousCities decodes the comma separated, escaped city list of the cookie
func readPreviousCities(c echo.Context) []string {
	cities := []string{}
	cookie, err := c.Cookie(previousCitiesCookie)
	if err != nil || cookie.Value == "" {
		return cities
	}

	for _, escaped := range strings.Split(cookie.Value, ",") {
		city, err := url.PathUnescape(escaped)
		if err != nil || strings.TrimSpace(city) == "" {
			continue
		}
		cities = append(cities, city)
		if len(cities) == maxPreviousCities {
			break
		}
	}
	return cities
}

// rememberCity puts city first, dropping older case-insensitive duplicates
func rememberCity(cities []string, city string) []string {
	updated := make([]string, 0, maxPreviousCities)
	updated = append(updated, city)
	for _, previous := range cities {
		if len(updated) == maxPreviousCities {
			break
		}
		if strings.EqualFold(previous, city) {
			continue
		}
		updated = append(updated, previous)
	}
	return updated
}

func writePreviousCities(c echo.Context, cities []string) {
	escaped := make([]string, 0, len(cities))
	for _, city := range cities {
		escaped = append(escaped, url.PathEscape(city))
	}
	c.SetCookie(&http.Cookie{
		Name:     previousCitiesCookie,
		Value:    strings.Join(escaped, ","),
		Path:     "/",
		MaxAge:   int(previousCitiesMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearPreviousCities(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:   previousCitiesCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
