package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h *Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestLive(t *testing.T) {
	code, body := serve(t, NewHandler("dashboard", nil), "/health")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "dashboard", body["service"])
}

func TestReady_AllChecksPass(t *testing.T) {
	h := NewHandler("dashboard", map[string]Check{
		"routes_file": func(context.Context) error { return nil },
	})

	code, body := serve(t, h, "/health/ready")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["checks"].(map[string]interface{})["routes_file"])
}

func TestReady_FailingCheck(t *testing.T) {
	h := NewHandler("dashboard", map[string]Check{
		"routes_file": func(context.Context) error { return errors.New("no such file") },
	})

	code, body := serve(t, h, "/health/ready")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body["status"])
	assert.Equal(t, "no such file", body["checks"].(map[string]interface{})["routes_file"])
}
