package breadcrumb

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/havennow/havennow/core"
	"github.com/havennow/havennow/modular"
)

const (
	Name = "breadcrumb"

	// Locator is where the module binds its trail factory in the container.
	Locator = "breadcrumb.Trail"

	// RootTitle labels the first crumb of every request trail.
	RootTitle = "Home"

	// ContextKey holds the request trail in the gin context.
	ContextKey = "breadcrumb"
)

func Module() modular.Factory {
	return func(core.Container) core.Definition { return &module{} }
}

type module struct {
	core.Base
}

// Bootstrap binds a fresh-trail factory at Locator.
func (m *module) Bootstrap() (bool, error) {
	m.App().Bind(Locator, func(core.Container) (any, error) {
		return New(), nil
	})
	return true, nil
}

// Make resolves a new trail from the container.
func Make(c core.Container) (*Trail, error) {
	v, err := c.Make(Locator)
	if err != nil {
		return nil, err
	}
	t, ok := v.(*Trail)
	if !ok {
		return nil, fmt.Errorf("breadcrumb: %s holds %T", Locator, v)
	}
	return t, nil
}

// Middleware attaches a trail seeded from the request path to each request.
// gin binds middleware to a route when the route is registered, so pass it
// to the web module with web.WithMiddlewares rather than adding it later.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKey, FromPath(RootTitle, c.Request.URL.Path))
		c.Next()
	}
}

// From returns the request's trail, seeding and storing one when
// Middleware did not run for this route.
func From(c *gin.Context) *Trail {
	if v, ok := c.Get(ContextKey); ok {
		if t, ok := v.(*Trail); ok {
			return t
		}
	}
	t := FromPath(RootTitle, c.Request.URL.Path)
	c.Set(ContextKey, t)
	return t
}
