// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "API catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CatalogResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/model.HealthResponse"}}
                }
            }
        },
        "/weather": {
            "get": {
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Get the weather of a city",
                "parameters": [
                    {"type": "string", "description": "City name", "name": "city", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.WeatherResponse"}},
                    "400": {"description": "Empty or too long city name", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "404": {"description": "City not found", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "502": {"description": "Weather provider unavailable", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            }
        },
        "/weather/autocomplete": {
            "get": {
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Suggest city names",
                "parameters": [
                    {"type": "string", "description": "Partial city name", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AutocompleteResponse"}}
                }
            }
        },
        "/weather/previous-cities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "List recently searched cities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.PreviousCitiesResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Forget recently searched cities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.PreviousCitiesResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Get the session search history",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HistoryResponse"}},
                    "400": {"description": "Invalid paging parameters", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Clear the session search history",
                "responses": {
                    "200": {"description": "Number of deleted searches", "schema": {"type": "object"}}
                }
            }
        },
        "/history/{id}": {
            "delete": {
                "tags": ["history"],
                "summary": "Delete one search of the session history",
                "parameters": [
                    {"type": "string", "description": "Search id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Search deleted"},
                    "404": {"description": "Search not found in this session", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Most searched cities",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Number of cities", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StatsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controller.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "error"},
                "message": {"type": "string"}
            }
        },
        "model.CurrentWeather": {
            "type": "object",
            "properties": {
                "temperature": {"type": "number"},
                "humidity": {"type": "number"},
                "wind_speed": {"type": "number"},
                "weather_code": {"type": "integer"},
                "description": {"type": "string"}
            }
        },
        "model.DailyForecast": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "temp_max": {"type": "number"},
                "temp_min": {"type": "number"},
                "weather_code": {"type": "integer"},
                "description": {"type": "string"}
            }
        },
        "model.FormattedForecast": {
            "type": "object",
            "properties": {
                "current": {"$ref": "#/definitions/model.CurrentWeather"},
                "daily_forecast": {"type": "array", "items": {"$ref": "#/definitions/model.DailyForecast"}}
            }
        },
        "model.WeatherResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "city": {"type": "string"},
                "country": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "weather_data": {"$ref": "#/definitions/model.FormattedForecast"}
            }
        },
        "model.Suggestion": {
            "type": "object",
            "properties": {
                "value": {"type": "string"},
                "label": {"type": "string"},
                "source": {"type": "string", "enum": ["local", "api"]},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "country": {"type": "string"},
                "admin1": {"type": "string"},
                "population": {"type": "integer"}
            }
        },
        "model.AutocompleteResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "suggestions": {"type": "array", "items": {"$ref": "#/definitions/model.Suggestion"}},
                "query": {"type": "string"},
                "total_found": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "model.PreviousCitiesResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "previous_cities": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.HistoryEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "city": {"type": "string"},
                "country": {"type": "string"},
                "search_date": {"type": "string"},
                "weather_data": {"type": "object"}
            }
        },
        "model.HistoryResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "history": {"type": "array", "items": {"$ref": "#/definitions/model.HistoryEntry"}},
                "total_count": {"type": "integer"},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "model.PopularCity": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "country": {"type": "string"},
                "search_count": {"type": "integer"}
            }
        },
        "model.StatsResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "popular_cities": {"type": "array", "items": {"$ref": "#/definitions/model.PopularCity"}},
                "total_count": {"type": "integer"}
            }
        },
        "model.EndpointInfo": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "method": {"type": "string"},
                "description": {"type": "string"},
                "parameters": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "model.CatalogResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "name": {"type": "string"},
                "version": {"type": "string"},
                "description": {"type": "string"},
                "data_source": {"type": "string"},
                "endpoints": {"type": "object", "additionalProperties": {"$ref": "#/definitions/model.EndpointInfo"}}
            }
        },
        "model.ComponentHealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["UP", "DOWN", "UNKNOWN"]},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["UP", "DOWN", "UNKNOWN"]},
                "database": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "cache": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "queue": {"$ref": "#/definitions/model.ComponentHealthStatus"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/weather-search",
	Schemes:          []string{},
	Title:            "Weather Search API",
	Description:      "City weather lookup backed by Open-Meteo, with autocomplete and session search history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
