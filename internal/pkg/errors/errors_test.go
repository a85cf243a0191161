package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WithCauseKeepsIdentity(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := fmt.Errorf("list provinces: %w", ErrStoreUnavailable.WithCause(cause))

	assert.True(t, Is(err, ErrStoreUnavailable))
	assert.True(t, stderrors.Is(err, cause))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.True(t, appErr.Retryable)
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestAppError_WithDetailsDoesNotMutateShared(t *testing.T) {
	detailed := ErrValidation.WithDetails(map[string]interface{}{"field": "radius_km"})

	assert.Nil(t, ErrValidation.Details)
	assert.Equal(t, "radius_km", detailed.Details["field"])
	assert.True(t, Is(detailed, ErrValidation))
}

func TestAppError_PoolAndStoreShareCode(t *testing.T) {
	assert.Equal(t, ErrStoreUnavailable.Code, ErrPoolUnavailable.Code)
	assert.False(t, Is(ErrPoolUnavailable, ErrStoreUnavailable))
}

func TestAs_NonAppError(t *testing.T) {
	_, ok := As(stderrors.New("plain"))
	assert.False(t, ok)
}
