package backofficeserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-backoffice/internal/platform/metrics"
	apierrors "github.com/Apurer/go-gin-backoffice/internal/shared/errors"
)

// EndpointParam is the query parameter naming the target resource and id.
const EndpointParam = "endpoint"

// ResourceController is implemented by every CRUD resource reachable through the dispatcher.
type ResourceController interface {
	List(c *gin.Context)
	Get(c *gin.Context, id int64)
	Create(c *gin.Context)
	Update(c *gin.Context, id int64)
	Delete(c *gin.Context, id int64)
}

// Dispatcher maps ?endpoint=<resource>[/<id>] and the HTTP verb to a controller method.
type Dispatcher struct {
	resources map[string]ResourceController
}

func NewDispatcher(resources map[string]ResourceController) *Dispatcher {
	registered := make(map[string]ResourceController, len(resources))
	for name, controller := range resources {
		if controller != nil {
			registered[name] = controller
		}
	}
	return &Dispatcher{resources: registered}
}

// Endpoint is a parsed endpoint parameter.
type Endpoint struct {
	Resource string
	ID       string
}

// ParseEndpoint splits the parameter on "/". The first segment is the
// resource, the second (if non-empty) the id; further segments are ignored.
func ParseEndpoint(raw string) Endpoint {
	parts := strings.Split(raw, "/")
	endpoint := Endpoint{Resource: parts[0]}
	if len(parts) > 1 {
		endpoint.ID = parts[1]
	}
	return endpoint
}

// HasID reports whether an id segment was supplied.
func (e Endpoint) HasID() bool {
	return e.ID != ""
}

// Handle serves every request on the API path.
func (d *Dispatcher) Handle(c *gin.Context) {
	endpoint := ParseEndpoint(c.Query(EndpointParam))
	controller, ok := d.resources[endpoint.Resource]
	if !ok {
		apierrors.Respond(c, apierrors.ErrEndpointNotFound)
		return
	}
	c.Set(metrics.ResourceKey, endpoint.Resource)

	switch c.Request.Method {
	case http.MethodGet:
		if !endpoint.HasID() {
			controller.List(c)
			return
		}
		if id, ok := parseID(c, endpoint); ok {
			controller.Get(c, id)
		}
	case http.MethodPost:
		controller.Create(c)
	case http.MethodPut:
		if id, ok := requireID(c, endpoint); ok {
			controller.Update(c, id)
		}
	case http.MethodDelete:
		if id, ok := requireID(c, endpoint); ok {
			controller.Delete(c, id)
		}
	default:
		c.Header("Allow", "GET, POST, PUT, DELETE")
		apierrors.Respond(c, apierrors.ErrMethodNotAllowed)
	}
}

func requireID(c *gin.Context, endpoint Endpoint) (int64, bool) {
	if !endpoint.HasID() {
		apierrors.Respond(c, apierrors.ErrIDRequired)
		return 0, false
	}
	return parseID(c, endpoint)
}

func parseID(c *gin.Context, endpoint Endpoint) (int64, bool) {
	id, err := strconv.ParseInt(endpoint.ID, 10, 64)
	if err != nil || id <= 0 {
		apierrors.Respond(c, apierrors.ErrInvalidID.WithDetail(endpoint.ID))
		return 0, false
	}
	return id, true
}
