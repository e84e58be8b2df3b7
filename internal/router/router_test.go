package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ringoforme/sock-whisperer-design-lab/config"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panicHandler struct{}

func (panicHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/generate_designs", func(c *gin.Context) {
		panic("unexpected nil proposal")
	})
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Mode = "test"
	return cfg
}

func TestSetupRecoversPanicAsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Setup(testConfig(), panicHandler{})

	req := httptest.NewRequest(http.MethodPost, "/generate_designs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"unexpected nil proposal"}`, w.Body.String())
}

func TestSetupRequestIDAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Setup(testConfig(), handler.NewHealthHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupKeepsClientRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Setup(testConfig(), handler.NewHealthHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
