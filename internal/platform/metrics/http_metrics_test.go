package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(m *HTTPMetrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api", func(c *gin.Context) {
		c.Set(ResourceKey, "products")
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", m.Handler())
	return router
}

func TestMiddleware_CountsByResource(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newHTTPMetricsWithRegistry(registry, registry)
	router := newRouter(m)

	for i := 0; i < 3; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api?endpoint=products", nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("products", http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", http.MethodGet, "404")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := NewHTTPMetrics()
	router := newRouter(m)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api?endpoint=products", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "backoffice_http_requests_total"))
}

func TestRegister_ReusesExistingCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := newHTTPMetricsWithRegistry(registry, registry)
	second := newHTTPMetricsWithRegistry(registry, registry)
	assert.Same(t, first.requests, second.requests)
}
