package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/pkg/errors"
)

func doRequest(t *testing.T, h fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestSendError_AppErrorHidesCause(t *testing.T) {
	status, body := doRequest(t, func(c *fiber.Ctx) error {
		err := fmt.Errorf("query provinces: %w", errors.ErrStoreUnavailable.WithCause(fmt.Errorf("dial tcp: secret-host")))
		return SendError(c, zap.NewNop(), err)
	})

	assert.Equal(t, 500, status)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, errors.CodeStoreUnavailable, errBody["code"])
	assert.Equal(t, true, errBody["retryable"])
	assert.NotContains(t, fmt.Sprint(body), "secret-host")
}

func TestSendError_UnknownErrorIs500(t *testing.T) {
	status, body := doRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, nil, fmt.Errorf("boom"))
	})

	assert.Equal(t, 500, status)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errBody["code"])
}

func TestSendJSON_BareBody(t *testing.T) {
	status, body := doRequest(t, func(c *fiber.Ctx) error {
		return SendJSON(c, 202, MessageResponse{Message: "ok"})
	})

	assert.Equal(t, 202, status)
	assert.Equal(t, "ok", body["message"])
}
