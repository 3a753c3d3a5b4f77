package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"kalasangam_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setupStatus struct {
	Configured     bool   `json:"configured"`
	ConnectionFile string `json:"connection_file"`
}

func TestSwitchHandler_SwapsAcrossHandlerTypes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newSwitchHandler()

	serve := func() int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		return rec.Code
	}
	assert.Equal(t, http.StatusNotFound, serve())

	engine := gin.New()
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	require.NotPanics(t, func() { h.Swap(engine) })
	assert.Equal(t, http.StatusNoContent, serve())

	require.NotPanics(t, func() {
		h.Swap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
	})
	assert.Equal(t, http.StatusTeapot, serve())
}

func TestSetupMode(t *testing.T) {
	ts := NewSetupTestServer(t)
	require.False(t, ts.App.Configured())

	t.Run("routes answer setup required", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/projects", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode, body)

		var e errorBody
		decodeJSON(t, body, &e)
		assert.Equal(t, "SETUP_REQUIRED", e.Error.Code)

		res, body = ts.SendRequest(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode, body)
	})

	t.Run("status before setup", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/setup", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var s setupStatus
		decodeJSON(t, body, &s)
		assert.False(t, s.Configured)
		assert.Equal(t, ts.Config.ConnectionFile, s.ConnectionFile)
	})

	t.Run("both keys are required", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/setup", "", map[string]string{"url": "file::memory:"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
		assert.False(t, ts.App.Configured())
	})

	t.Run("setup persists keys and enables the api", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/setup", "", map[string]string{
			"url":      "file::memory:",
			"anon_key": testAnonKey,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var s setupStatus
		decodeJSON(t, body, &s)
		assert.True(t, s.Configured)
		assert.True(t, ts.App.Configured())

		conn, err := config.LoadConnection(ts.Config.ConnectionFile)
		require.NoError(t, err)
		assert.Equal(t, "file::memory:", conn.URL)
		assert.Equal(t, testAnonKey, conn.AnonKey)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/session", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var session sessionBody
		decodeJSON(t, body, &session)
		assert.Equal(t, "unauthenticated", session.State)

		res, body = ts.SendRequest(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, body)
	})

	t.Run("second setup conflicts", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/setup", "", map[string]string{
			"url":      "file::memory:",
			"anon_key": "other-key",
		})
		assert.Equal(t, http.StatusConflict, res.StatusCode, body)

		conn, err := config.LoadConnection(ts.Config.ConnectionFile)
		require.NoError(t, err)
		assert.Equal(t, testAnonKey, conn.AnonKey)
	})
}

func TestStartupWithSavedConnection(t *testing.T) {
	ts := NewTestServer(t)
	assert.True(t, ts.App.Configured())
	assert.NotNil(t, ts.App.DB())

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/setup", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var s setupStatus
	decodeJSON(t, body, &s)
	assert.True(t, s.Configured)

	wrongKey := *ts
	wrongKey.AnonKey = "not-the-key"
	res, body = wrongKey.SendRequest(t, http.MethodGet, "/api/v1/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}
