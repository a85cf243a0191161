package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-engine/internal/pkg/errors"
)

type sampleRequest struct {
	Address string  `json:"address" validate:"required"`
	Limit   int     `json:"limit" validate:"min=0"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(&sampleRequest{Address: "北京市朝阳区", Limit: 0, Lat: 39.9})
	assert.NoError(t, err)
}

func TestValidate_FieldDetails(t *testing.T) {
	err := Validate(&sampleRequest{Limit: -1, Lat: 91})
	require.Error(t, err)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, errors.CodeValidation, appErr.Code)
	assert.Equal(t, "required", appErr.Details["address"])
	assert.Equal(t, "min", appErr.Details["limit"])
	assert.Equal(t, "max", appErr.Details["lat"])
}
