package errors

import "net/http"

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// Ошибки валидации (400)
var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrValidation = New(
		CodeValidation,
		"Request validation failed",
		http.StatusBadRequest,
	)

	ErrEmptyAddress = New(
		CodeValidation,
		"Address parameter cannot be empty.",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidLimit = New(
		CodeValidation,
		"Limit must be a non-negative integer",
		http.StatusBadRequest,
	)

	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Invalid geometry",
		http.StatusBadRequest,
	)

	ErrGeometryNotPoint = New(
		"INVALID_GEOMETRY",
		"Input geometry must be a point!",
		http.StatusBadRequest,
	)

	ErrGeometryNotPolygonal = New(
		"INVALID_GEOMETRY",
		"Input geometry must be a Polygon or MultiPolygon",
		http.StatusBadRequest,
	)
)

// Ошибки "не найдено" (404) для единичных запросов
var (
	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrAddressNotFound = New(
		"ADDRESS_NOT_FOUND",
		"Address not found",
		http.StatusNotFound,
	)

	ErrProvincesNotFound = New(
		"PROVINCES_NOT_FOUND",
		"No provinces found.",
		http.StatusNotFound,
	)

	ErrTaskNotFound = New(
		"TASK_NOT_FOUND",
		"Task not found",
		http.StatusNotFound,
	)
)

// Ошибки хранилища и внешних систем (5xx)
var (
	ErrStoreUnavailable = &AppError{
		Code:       CodeStoreUnavailable,
		Message:    "Spatial store unavailable",
		StatusCode: http.StatusInternalServerError,
		Retryable:  true,
	}

	ErrPoolUnavailable = &AppError{
		Code:       CodeStoreUnavailable,
		Message:    "Connection pool unavailable",
		StatusCode: http.StatusInternalServerError,
		Retryable:  true,
	}

	ErrStoreCompute = New(
		"STORE_COMPUTE_ERROR",
		"Database failed to compute geometry",
		http.StatusInternalServerError,
	)

	ErrJobBackend = New(
		"JOB_BACKEND_ERROR",
		"Task backend unavailable",
		http.StatusInternalServerError,
	)

	ErrGeocoderUnavailable = New(
		"GEOCODER_UNAVAILABLE",
		"Geocoding provider request failed",
		http.StatusBadGateway,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
