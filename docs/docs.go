// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/forecast": {
            "get": {
                "produces": ["application/json"],
                "tags": ["State"],
                "summary": "Get current forecast",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/http.ForecastResponse"}
                    }
                }
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Get search history",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/http.HistoryResponse"}
                    }
                }
            }
        },
        "/history/select": {
            "post": {
                "description": "Loads the forecast for a past search without adding to the history.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Select a history entry",
                "parameters": [
                    {
                        "description": "History entry",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.CityRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/weather.State"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/http.ErrorResponse"}
                    }
                }
            }
        },
        "/location": {
            "post": {
                "description": "Requests location access if undecided, then loads the forecast for the current position.",
                "produces": ["application/json"],
                "tags": ["Weather"],
                "summary": "Use the device location",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/weather.State"}
                    }
                }
            }
        },
        "/search": {
            "post": {
                "description": "Records the city in the history, resolves it and loads its forecast.\nFailures are reported in the state's error slot, not the status code.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Weather"],
                "summary": "Submit a city search",
                "parameters": [
                    {
                        "description": "City to search",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.CityRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/weather.State"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/http.ErrorResponse"}
                    }
                }
            }
        },
        "/state": {
            "get": {
                "description": "Forecast list, resolved city, the single error slot and the search history",
                "produces": ["application/json"],
                "tags": ["State"],
                "summary": "Get observable state",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/weather.State"}
                    }
                }
            }
        }
    },
    "definitions": {
        "http.CityRequest": {
            "type": "object",
            "properties": {
                "city": {"type": "string", "example": "Paris"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Invalid request body"}
            }
        },
        "http.ForecastResponse": {
            "type": "object",
            "properties": {
                "city_name": {"type": "string", "example": "Paris"},
                "forecast": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.DailyForecast"}
                },
                "phase": {"type": "string", "example": "ready"}
            }
        },
        "http.HistoryResponse": {
            "type": "object",
            "properties": {
                "history": {
                    "type": "array",
                    "items": {"type": "string"},
                    "example": ["Paris", "Berlin"]
                }
            }
        },
        "models.DailyForecast": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "Mon, 5 August"},
                "description": {"type": "string", "example": "Clear"},
                "icon_id": {"type": "string", "example": "sun"},
                "temperature": {"type": "number", "example": 21.5}
            }
        },
        "weather.ErrorState": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "6f1c1c36-3c2e-4c8e-9a53-1f1e0b0e6a0d"},
                "message": {"type": "string", "example": "No internet connection. Please check your network settings and try again."}
            }
        },
        "weather.State": {
            "type": "object",
            "properties": {
                "city_name": {"type": "string", "example": "Paris"},
                "error": {"$ref": "#/definitions/weather.ErrorState"},
                "forecast": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.DailyForecast"}
                },
                "history": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "phase": {"type": "string", "example": "ready"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Weather Forecast API",
	Description:      "Resolves a city or the device location and serves a multi-day Open-Meteo forecast.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
