package backofficeserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-backoffice/internal/platform/health"
	"github.com/Apurer/go-gin-backoffice/internal/platform/metrics"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	// "ANY" registers the handler for every method.
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// MethodAny registers a route for every HTTP method.
const MethodAny = "ANY"

// ApiHandleFunctions bundles everything the router exposes.
type ApiHandleFunctions struct {
	ProductAPI *ProductAPI
	OrderAPI   *OrderAPI
	Health     *health.Handler
	Metrics    *metrics.HTTPMetrics
	Logger     *slog.Logger
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions)
}

// NewRouterWithGinEngine adds the back office middleware and routes to an
// existing engine. Middleware already installed on the engine runs first.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.Use(gin.Recovery(), RequestID(), AccessLog(handleFunctions.Logger))
	if handleFunctions.Metrics != nil {
		router.Use(handleFunctions.Metrics.Middleware())
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		case MethodAny:
			router.Any(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not configured.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	resources := map[string]ResourceController{}
	if handleFunctions.ProductAPI != nil {
		resources["products"] = handleFunctions.ProductAPI
	}
	if handleFunctions.OrderAPI != nil {
		resources["orders"] = handleFunctions.OrderAPI
	}
	dispatcher := NewDispatcher(resources)

	routes := []Route{
		{"Dispatch", MethodAny, "/api", dispatcher.Handle},
		// legacy base URL of the first admin client
		{"DispatchLegacy", MethodAny, "/index.php", dispatcher.Handle},
		{"Livez", http.MethodGet, "/livez", health.Liveness},
	}
	if handleFunctions.Health != nil {
		routes = append(routes, Route{"Healthz", http.MethodGet, "/healthz", handleFunctions.Health.Readiness})
	}
	if handleFunctions.Metrics != nil {
		routes = append(routes, Route{"Metrics", http.MethodGet, "/metrics", handleFunctions.Metrics.Handler()})
	}
	return routes
}
