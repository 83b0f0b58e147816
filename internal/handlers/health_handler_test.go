// internal/handlers/health_handler_test.go
package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avasquez/stitchstock-be/internal/handlers"
	"github.com/avasquez/stitchstock-be/internal/pkg/config"
	"github.com/avasquez/stitchstock-be/test/helpers"
	"github.com/avasquez/stitchstock-be/test/mocks"
)

func healthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Version = "1.2.3"
	cfg.App.Environment = "test"
	cfg.Store.Backend = config.BackendFile
	return cfg
}

func TestHealthHandler_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockBlobStore(ctrl)

	handler := handlers.NewHealthHandler(store, healthConfig(), helpers.TestLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "test", resp.Environment)
	assert.Equal(t, config.BackendFile, resp.Store)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("ready_when_store_pings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockBlobStore(ctrl)
		store.EXPECT().Ping(gomock.Any()).Return(nil)

		handler := handlers.NewHealthHandler(store, healthConfig(), helpers.TestLogger())

		rec := httptest.NewRecorder()
		handler.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ready", resp["status"])
	})

	t.Run("unavailable_when_store_is_down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockBlobStore(ctrl)
		store.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		handler := handlers.NewHealthHandler(store, healthConfig(), helpers.TestLogger())

		rec := httptest.NewRecorder()
		handler.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "not ready", resp["status"])
	})
}
