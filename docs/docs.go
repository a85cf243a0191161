// Package docs Geo Engine API.
//
// OpenAPI-описание сервиса, регистрируется в swag и отдается fiber-swagger по /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Приветствие",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.MessageResponse"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "description": "503, если пул соединений хранилища недоступен",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Состояние сервиса",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/geocode": {
            "get": {
                "description": "Возвращает координаты и административную привязку адреса через AMap",
                "produces": ["application/json"],
                "tags": ["Geocoding"],
                "summary": "Геокодирование адреса",
                "parameters": [
                    {"type": "string", "description": "Адрес", "name": "address", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Location"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/reverse-geocode": {
            "get": {
                "description": "Возвращает адрес ближайшего объекта по координатам",
                "produces": ["application/json"],
                "tags": ["Geocoding"],
                "summary": "Обратное геокодирование",
                "parameters": [
                    {"type": "number", "description": "Долгота", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "description": "Широта", "name": "lat", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Address"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/provinces": {
            "get": {
                "description": "Возвращает не более limit провинций с геометрией в GeoJSON",
                "produces": ["application/json"],
                "tags": ["Provinces"],
                "summary": "Список провинций",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Максимальное количество", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Province"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/provinces/{province_name}/cities": {
            "get": {
                "description": "Возвращает города, пересекающие провинцию. Неизвестная провинция дает пустую коллекцию.",
                "produces": ["application/json"],
                "tags": ["Provinces"],
                "summary": "Города провинции",
                "parameters": [
                    {"type": "string", "description": "Название провинции", "name": "province_name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.FeatureCollection"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/analysis/buffer": {
            "post": {
                "description": "Строит буфер radius_km вокруг точки в проекции EPSG:3857 и возвращает полигон в EPSG:4326",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Буфер вокруг точки",
                "parameters": [
                    {"description": "Точка и радиус", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BufferRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Feature"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/analysis/intersecting-cities": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Города, пересекающие полигон",
                "parameters": [
                    {"description": "Polygon или MultiPolygon", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.OverlayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.FeatureCollection"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/analysis/slow-task": {
            "post": {
                "description": "Ставит задачу в очередь и сразу возвращает task_id. Результат доступен через /api/tasks/{task_id}.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Медленный анализ в фоне",
                "parameters": [
                    {"description": "Входные данные", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SlowTaskRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.SlowTaskResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/tasks/{task_id}": {
            "get": {
                "description": "Не ждет завершения задачи. Неизвестный task_id дает 404, а не PENDING.",
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Состояние задачи",
                "parameters": [
                    {"type": "string", "description": "ID задачи", "name": "task_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TaskStatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Geometry": {
            "type": "object",
            "description": "GeoJSON Point, Polygon или MultiPolygon",
            "properties": {
                "type": {"type": "string", "enum": ["Point", "Polygon", "MultiPolygon"]},
                "coordinates": {"type": "array", "items": {}}
            }
        },
        "domain.Feature": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "Feature"},
                "geometry": {"$ref": "#/definitions/domain.Geometry"},
                "properties": {"type": "object", "additionalProperties": true}
            }
        },
        "domain.FeatureCollection": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "FeatureCollection"},
                "features": {"type": "array", "items": {"$ref": "#/definitions/domain.Feature"}}
            }
        },
        "domain.Province": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "geometry": {"$ref": "#/definitions/domain.Geometry"}
            }
        },
        "domain.Location": {
            "type": "object",
            "properties": {
                "formatted_address": {"type": "string"},
                "country": {"type": "string"},
                "province": {"type": "string"},
                "city": {"type": "string"},
                "district": {"type": "string"},
                "adcode": {"type": "string"},
                "level": {"type": "string"},
                "lon": {"type": "number"},
                "lat": {"type": "number"},
                "location": {"type": "string"}
            }
        },
        "domain.Address": {
            "type": "object",
            "properties": {
                "formatted_address": {"type": "string"},
                "country": {"type": "string"},
                "province": {"type": "string"},
                "city": {"type": "string"},
                "district": {"type": "string"},
                "township": {"type": "string"},
                "adcode": {"type": "string"}
            }
        },
        "dto.BufferRequest": {
            "type": "object",
            "required": ["geojson_feature", "radius_km"],
            "properties": {
                "geojson_feature": {"$ref": "#/definitions/domain.Feature"},
                "radius_km": {"type": "number"}
            }
        },
        "dto.OverlayRequest": {
            "type": "object",
            "required": ["polygon_feature"],
            "properties": {
                "polygon_feature": {"$ref": "#/definitions/domain.Feature"}
            }
        },
        "dto.SlowTaskRequest": {
            "type": "object",
            "required": ["input_data"],
            "properties": {
                "input_data": {"type": "string"}
            }
        },
        "dto.SlowTaskResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "task_id": {"type": "string"}
            }
        },
        "dto.TaskStatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["PENDING", "SUCCESS", "FAILURE"]},
                "result": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "store": {"type": "string"},
                "queue": {"type": "string"},
                "connections_in_use": {"type": "integer"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "retryable": {"type": "boolean"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Geo Engine API",
	Description:      "Геопространственный сервис: геокодирование, провинции и города из PostGIS, буфер, пересечения и фоновый анализ.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
