package model

// UnknownWeatherDescription is returned for codes outside the WMO table
const UnknownWeatherDescription = "Unknown"

var weatherCodeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Light snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// DescribeWeatherCode returns the WMO description of code
func DescribeWeatherCode(code int) string {
	if description, ok := weatherCodeDescriptions[code]; ok {
		return description
	}
	return UnknownWeatherDescription
}

// WeatherCodes returns every code with a known description
func WeatherCodes() []int {
	codes := make([]int, 0, len(weatherCodeDescriptions))
	for code := range weatherCodeDescriptions {
		codes = append(codes, code)
	}
	return codes
}
